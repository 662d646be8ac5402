// Package widget serves the embeddable booking launcher: a script tag a
// clinic drops into its site to get a floating button that opens the booking
// form in an iframe overlay.
package widget

import "net/http"

// Handler serves the widget script and a demo host page.
//
// The script reads its configuration from data attributes on its own script
// tag, or from query parameters on the script URL:
//   - clinic: clinic name shown in the form header
//   - accent: launcher button color (default #4f46e5)
//   - position: "left" or "right" (default "right")
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Script serves the embeddable launcher.
// GET /widget.js
func (h *Handler) Script(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write([]byte(launcherJS))
}

// DemoPage serves a sample clinic page with the widget installed.
// GET /widget/demo
func (h *Handler) DemoPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(demoPageHTML))
}

const launcherJS = `(function () {
  'use strict';

  if (window.__intakeWidgetLoaded) return;
  window.__intakeWidgetLoaded = true;

  var script = document.currentScript;
  var src = script && script.src ? new URL(script.src) : null;
  var origin = src ? src.origin : '';

  function param(name, fallback) {
    var v = script && script.getAttribute('data-' + name);
    if (!v && src) v = src.searchParams.get(name);
    return v || fallback;
  }

  var accent = param('accent', '#4f46e5');
  var position = param('position', 'right') === 'left' ? 'left' : 'right';
  var clinic = param('clinic', '');

  var bookURL = origin + '/book' + (clinic ? '?clinic=' + encodeURIComponent(clinic) : '');

  var button = document.createElement('button');
  button.id = 'intake-widget-button';
  button.type = 'button';
  button.textContent = 'Book an appointment';
  button.style.cssText = [
    'position:fixed',
    'bottom:24px',
    position + ':24px',
    'z-index:99998',
    'padding:14px 22px',
    'border:none',
    'border-radius:999px',
    'background:' + accent,
    'color:#fff',
    'font:600 14px -apple-system,BlinkMacSystemFont,Segoe UI,Roboto,sans-serif',
    'cursor:pointer',
    'box-shadow:0 4px 12px rgba(0,0,0,0.25)'
  ].join(';');

  var overlay = document.createElement('div');
  overlay.id = 'intake-widget-overlay';
  overlay.style.cssText = [
    'position:fixed',
    'inset:0',
    'z-index:99999',
    'background:rgba(17,24,39,0.55)',
    'display:none',
    'align-items:center',
    'justify-content:center',
    'padding:24px'
  ].join(';');

  var frame = document.createElement('iframe');
  frame.title = 'Book an appointment';
  frame.style.cssText = [
    'width:100%',
    'max-width:680px',
    'height:90%',
    'max-height:760px',
    'border:none',
    'border-radius:12px',
    'background:#fff',
    'box-shadow:0 20px 60px rgba(0,0,0,0.35)'
  ].join(';');

  var close = document.createElement('button');
  close.type = 'button';
  close.setAttribute('aria-label', 'Close booking form');
  close.textContent = '×';
  close.style.cssText = [
    'position:absolute',
    'top:16px',
    'right:20px',
    'border:none',
    'background:transparent',
    'color:#fff',
    'font-size:32px',
    'line-height:1',
    'cursor:pointer'
  ].join(';');

  overlay.appendChild(frame);
  overlay.appendChild(close);

  function openWidget() {
    // Load lazily so host pages don't pay for the form until it's wanted.
    if (!frame.src) frame.src = bookURL;
    overlay.style.display = 'flex';
    document.body.style.overflow = 'hidden';
  }

  function closeWidget() {
    overlay.style.display = 'none';
    document.body.style.overflow = '';
  }

  button.addEventListener('click', openWidget);
  close.addEventListener('click', closeWidget);
  overlay.addEventListener('click', function (e) {
    if (e.target === overlay) closeWidget();
  });
  document.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') closeWidget();
  });

  function mount() {
    document.body.appendChild(button);
    document.body.appendChild(overlay);
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', mount);
  } else {
    mount();
  }
})();
`

const demoPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Riverbend Family Clinic</title>
  <style>
    body {
      font-family: Georgia, 'Times New Roman', serif;
      margin: 0;
      color: #1f2937;
    }
    .hero {
      background: #0f766e;
      color: #fff;
      padding: 72px 24px;
      text-align: center;
    }
    .hero h1 { margin: 0 0 8px; font-size: 36px; }
    .hero p { margin: 0; opacity: 0.85; }
    .content {
      max-width: 720px;
      margin: 0 auto;
      padding: 48px 24px;
      line-height: 1.7;
    }
  </style>
</head>
<body>
  <div class="hero">
    <h1>Riverbend Family Clinic</h1>
    <p>Primary care for every stage of life</p>
  </div>
  <div class="content">
    <h2>Welcome</h2>
    <p>This page stands in for a clinic website that has installed the
    booking widget. The floating button in the corner comes from a single
    script tag; everything else on this page is the clinic's own content.</p>
    <p>Click the button to open the appointment form.</p>
  </div>
  <script src="/widget.js" data-clinic="Riverbend Family Clinic" data-accent="#0f766e" defer></script>
</body>
</html>
`

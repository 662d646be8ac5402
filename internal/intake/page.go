package intake

// bookingPageHTML is the self-contained appointment form. Three views: the
// form, a transient submitting state (controls disabled, no client timeout),
// and the success screen with a "Book another appointment" action. Failed
// submissions keep the entered values: validation errors paint inline and
// webhook failures fire a one-shot toast.
const bookingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Book an appointment</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }

    :root {
      --primary: #4f46e5;
      --primary-dark: #4338ca;
      --text: #1f2937;
      --text-muted: #6b7280;
      --border: #e5e7eb;
      --bg: #f9fafb;
      --white: #ffffff;
      --success: #10b981;
      --danger: #dc2626;
    }

    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
      background: var(--bg);
      color: var(--text);
      line-height: 1.5;
    }

    .header {
      background: linear-gradient(135deg, #4f46e5 0%, #7c3aed 100%);
      padding: 12px 24px;
      display: flex;
      align-items: center;
      gap: 16px;
    }

    .logo {
      width: 32px;
      height: 32px;
      background: var(--white);
      border-radius: 8px;
      display: flex;
      align-items: center;
      justify-content: center;
      font-weight: bold;
      font-size: 12px;
      color: var(--primary);
    }

    .header-title {
      color: var(--white);
      font-size: 14px;
      font-weight: 500;
    }

    .main {
      max-width: 640px;
      margin: 0 auto;
      padding: 32px 24px;
    }

    .card {
      background: var(--white);
      border-radius: 12px;
      padding: 32px;
      box-shadow: 0 1px 3px rgba(0,0,0,0.1);
    }

    .view { display: none; }
    .view.active { display: block; }

    .view-title {
      font-size: 24px;
      font-weight: 600;
      margin-bottom: 4px;
    }

    .view-subtitle {
      color: var(--text-muted);
      font-size: 14px;
      margin-bottom: 24px;
    }

    .form-group {
      margin-bottom: 20px;
    }

    .form-label {
      display: block;
      font-size: 12px;
      color: var(--text-muted);
      margin-bottom: 6px;
    }

    .form-input {
      width: 100%;
      padding: 12px 16px;
      border: 1px solid var(--border);
      border-radius: 8px;
      font-size: 14px;
      background: var(--white);
      transition: border-color 0.2s;
    }

    .form-input:focus {
      outline: none;
      border-color: var(--primary);
    }

    .form-input:disabled {
      background: var(--bg);
      color: var(--text-muted);
    }

    .form-input.invalid {
      border-color: var(--danger);
    }

    textarea.form-input {
      min-height: 100px;
      resize: vertical;
    }

    .field-error {
      font-size: 12px;
      color: var(--danger);
      margin-top: 4px;
      min-height: 16px;
    }

    .form-row {
      display: grid;
      grid-template-columns: 1fr 1fr;
      gap: 16px;
    }

    @media (max-width: 480px) {
      .form-row { grid-template-columns: 1fr; }
    }

    .btn {
      padding: 14px 24px;
      border-radius: 8px;
      font-size: 14px;
      font-weight: 600;
      cursor: pointer;
      transition: all 0.2s;
      border: none;
    }

    .btn-primary {
      background: var(--primary);
      color: var(--white);
    }

    .btn-primary:hover:not(:disabled) {
      background: var(--primary-dark);
    }

    .btn-primary:disabled {
      opacity: 0.6;
      cursor: not-allowed;
    }

    .btn-secondary {
      background: var(--white);
      color: var(--text);
      border: 1px solid var(--border);
    }

    .btn-secondary:hover {
      background: var(--bg);
    }

    .form-footer {
      margin-top: 8px;
      padding-top: 24px;
      border-top: 1px solid var(--border);
      display: flex;
      justify-content: flex-end;
    }

    .success-screen {
      text-align: center;
      padding: 24px 0;
    }

    .success-icon {
      width: 80px;
      height: 80px;
      background: #dcfce7;
      border-radius: 50%;
      display: flex;
      align-items: center;
      justify-content: center;
      margin: 0 auto 24px;
    }

    .success-icon svg {
      color: var(--success);
      width: 40px;
      height: 40px;
    }

    .success-title {
      font-size: 24px;
      font-weight: 600;
      margin-bottom: 8px;
    }

    .success-message {
      color: var(--text-muted);
      margin-bottom: 24px;
    }

    .confirmation-details {
      background: var(--bg);
      border-radius: 8px;
      padding: 20px;
      text-align: left;
      max-width: 400px;
      margin: 0 auto 24px;
    }

    .detail-row {
      display: flex;
      justify-content: space-between;
      gap: 16px;
      padding: 8px 0;
      border-bottom: 1px solid var(--border);
    }

    .detail-row:last-child {
      border-bottom: none;
    }

    .detail-label {
      font-size: 13px;
      color: var(--text-muted);
    }

    .detail-value {
      font-size: 13px;
      font-weight: 500;
      text-align: right;
      word-break: break-word;
    }

    .toast {
      position: fixed;
      bottom: 24px;
      left: 50%;
      transform: translateX(-50%) translateY(100px);
      background: var(--danger);
      color: var(--white);
      padding: 12px 20px;
      border-radius: 8px;
      font-size: 14px;
      box-shadow: 0 4px 12px rgba(0,0,0,0.2);
      opacity: 0;
      transition: all 0.3s;
      pointer-events: none;
    }

    .toast.visible {
      opacity: 1;
      transform: translateX(-50%) translateY(0);
    }

    .hidden { display: none !important; }
  </style>
</head>
<body>
  <header class="header">
    <div class="logo">+</div>
    <span class="header-title" id="clinicName">Book an appointment</span>
  </header>

  <main class="main">
    <div class="card">
      <!-- Form view -->
      <div class="view active" id="formView">
        <h1 class="view-title">Request an appointment</h1>
        <p class="view-subtitle">Tell us a little about yourself and what brings you in.</p>

        <form id="intakeForm" novalidate>
          <div class="form-row">
            <div class="form-group">
              <label class="form-label" for="field-name">Full name</label>
              <input type="text" class="form-input" id="field-name" name="name" placeholder="Jane Doe">
              <div class="field-error" id="error-name"></div>
            </div>
            <div class="form-group">
              <label class="form-label" for="field-age">Age</label>
              <input type="text" class="form-input" id="field-age" name="age" inputmode="numeric" placeholder="45">
              <div class="field-error" id="error-age"></div>
            </div>
          </div>

          <div class="form-row">
            <div class="form-group">
              <label class="form-label" for="field-gender">Gender</label>
              <select class="form-input" id="field-gender" name="gender">
                <option value="">Select...</option>
                <option value="male">Male</option>
                <option value="female">Female</option>
                <option value="other">Other</option>
              </select>
              <div class="field-error" id="error-gender"></div>
            </div>
            <div class="form-group">
              <label class="form-label" for="field-contactNumber">Contact number</label>
              <input type="tel" class="form-input" id="field-contactNumber" name="contactNumber" placeholder="+1 555 123 4567">
              <div class="field-error" id="error-contactNumber"></div>
            </div>
          </div>

          <div class="form-group">
            <label class="form-label" for="field-email">Email</label>
            <input type="email" class="form-input" id="field-email" name="email" placeholder="your@email.com">
            <div class="field-error" id="error-email"></div>
          </div>

          <div class="form-group">
            <label class="form-label" for="field-problem">What brings you in?</label>
            <textarea class="form-input" id="field-problem" name="problem" placeholder="Describe your symptoms or concern..."></textarea>
            <div class="field-error" id="error-problem"></div>
          </div>

          <div class="form-footer">
            <button type="submit" class="btn btn-primary" id="submitBtn">Request appointment</button>
          </div>
        </form>
      </div>

      <!-- Success view -->
      <div class="view" id="successView">
        <div class="success-screen">
          <div class="success-icon">
            <svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
              <polyline points="20 6 9 17 4 12"/>
            </svg>
          </div>
          <h1 class="success-title">Request received</h1>
          <p class="success-message" id="successMessage"></p>

          <div class="confirmation-details hidden" id="confirmationDetails"></div>

          <button class="btn btn-secondary" onclick="bookAnother()">Book another appointment</button>
        </div>
      </div>
    </div>
  </main>

  <div class="toast" id="toast" role="alert"></div>

  <script>
    var FIELDS = ['name', 'age', 'gender', 'contactNumber', 'email', 'problem'];
    var submitting = false;
    var toastTimer = null;

    function fieldInput(name) {
      return document.getElementById('field-' + name);
    }

    function fieldError(name) {
      return document.getElementById('error-' + name);
    }

    // One submission at a time: the disabled control is the lock.
    function setSubmitting(on) {
      submitting = on;
      var btn = document.getElementById('submitBtn');
      btn.disabled = on;
      btn.textContent = on ? 'Submitting...' : 'Request appointment';
      FIELDS.forEach(function (name) { fieldInput(name).disabled = on; });
    }

    function clearErrors() {
      FIELDS.forEach(function (name) {
        fieldError(name).textContent = '';
        fieldInput(name).classList.remove('invalid');
      });
    }

    function showErrors(fields) {
      Object.keys(fields).forEach(function (name) {
        var slot = fieldError(name);
        if (slot) {
          slot.textContent = fields[name];
          fieldInput(name).classList.add('invalid');
        }
      });
    }

    function showToast(message) {
      var toast = document.getElementById('toast');
      toast.textContent = message;
      toast.classList.add('visible');
      if (toastTimer) clearTimeout(toastTimer);
      toastTimer = setTimeout(function () { toast.classList.remove('visible'); }, 5000);
    }

    function showView(id) {
      document.querySelectorAll('.view').forEach(function (el) { el.classList.remove('active'); });
      document.getElementById(id).classList.add('active');
    }

    function renderConfirmation(data) {
      // Message and values arrive sanitized from the gateway.
      document.getElementById('successMessage').innerHTML = data.message || '';

      var details = document.getElementById('confirmationDetails');
      details.innerHTML = '';
      var entries = data.display || [];
      entries.forEach(function (entry) {
        var row = document.createElement('div');
        row.className = 'detail-row';
        var label = document.createElement('div');
        label.className = 'detail-label';
        label.textContent = entry.label;
        var value = document.createElement('div');
        value.className = 'detail-value';
        value.innerHTML = entry.value;
        row.appendChild(label);
        row.appendChild(value);
        details.appendChild(row);
      });
      details.classList.toggle('hidden', entries.length === 0);
    }

    function submitForm(event) {
      event.preventDefault();
      if (submitting) return;

      clearErrors();
      setSubmitting(true);

      var body = {};
      FIELDS.forEach(function (name) { body[name] = fieldInput(name).value; });

      fetch('/api/v1/appointments', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(body)
      }).then(function (resp) {
        if (resp.status === 422) {
          return resp.json().then(function (data) {
            showErrors(data.fields || {});
          });
        }
        if (!resp.ok) {
          throw new Error('submission failed: ' + resp.status);
        }
        return resp.json().then(function (data) {
          renderConfirmation(data);
          document.getElementById('intakeForm').reset();
          showView('successView');
        });
      }).catch(function () {
        showToast('We could not submit your request. Please try again.');
      }).finally(function () {
        setSubmitting(false);
      });
    }

    function bookAnother() {
      document.getElementById('intakeForm').reset();
      clearErrors();
      showView('formView');
    }

    document.addEventListener('DOMContentLoaded', function () {
      var params = new URLSearchParams(window.location.search);
      var clinic = params.get('clinic');
      if (clinic) {
        document.getElementById('clinicName').textContent = clinic;
        document.title = clinic + ' | Book an appointment';
      }
      document.getElementById('intakeForm').addEventListener('submit', submitForm);
    });
  </script>
</body>
</html>`

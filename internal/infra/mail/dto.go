package mail

type WelcomeEmailData struct {
	Name string
}

const welcomeHTML = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1a1a1a;">
    <h2>Hi {{.Name}},</h2>
    <p>Thanks for your interest — you're on the list.</p>
    <p>We review every request by hand and will reach out as soon as your
    access is approved. No action needed on your side.</p>
    <p style="color: #888; font-size: 12px;">
      You received this email because this address was submitted on our
      early-access form. If that wasn't you, just ignore this message.
    </p>
  </body>
</html>`

package templates

import (
	"fmt"
	"html"
)

// RenderPendingRequestsReminderEmail generates the HTML body for the daily
// reminder sent to advocates with case requests that have sat in Pending.
func RenderPendingRequestsReminderEmail(advocateName string, pendingCount int) string {
	safeName := html.EscapeString(advocateName)

	noun := "case requests"
	if pendingCount == 1 {
		noun = "case request"
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Pending case requests</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f5f7; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #1f3a5f 0%%, #2d6a4f 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>You have clients waiting</h1>
    </div>
    <div class="content">
      <p>Dear %s,</p>
      <p>You have <strong>%d %s</strong> that have been pending for more than three days.
      Please sign in to your dashboard to review and respond to them.</p>
      <p>Clients who wait too long often take their case elsewhere.</p>
    </div>
    <div class="footer">
      <p>&copy; Ukil Legal Services</p>
    </div>
  </div>
</body>
</html>`, safeName, pendingCount, noun)
}

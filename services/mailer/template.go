package mailer

import (
	"fmt"
	"html"
)

// Wrap places body inside the branded email layout.
func Wrap(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<style>
		body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
		.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
		.header { background-color: #111827; padding: 30px; text-align: center; }
		.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; letter-spacing: 1px; }
		.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
		.content h2 { margin-top: 0; }
		.info-box { background: #F3F4F6; padding: 15px; border-radius: 4px; border-left: 4px solid #F59E0B; margin: 20px 0; }
		.btn { display: inline-block; padding: 12px 24px; background-color: #F59E0B; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; }
		.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #6B7280; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>SELLING INFINITY</h1></div>
		<div class="content">
			<h2>%s</h2>
			%s
		</div>
		<div class="footer">&copy; Selling Infinity. All rights reserved.</div>
	</div>
</body>
</html>`, html.EscapeString(title), body)
}

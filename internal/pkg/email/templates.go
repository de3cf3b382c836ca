package email

// BaseTemplate wraps every email in the hotel branding
const BaseTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:24px 12px;">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
          <tr>
            <td style="background:#1a2b4a;padding:20px 32px;">
              <span style="color:#ffffff;font-size:22px;font-weight:bold;">Fala Hotels</span>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;color:#333333;font-size:15px;line-height:1.6;">
              {{.Content}}
            </td>
          </tr>
          <tr>
            <td style="padding:20px 32px;background:#f9fafb;color:#8a8f98;font-size:12px;">
              Fala Hotels &middot; reservas@falahotels.com<br>
              Este es un mensaje automático, por favor no responda a este correo.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

// BookingConfirmationTemplate confirms a new reservation
const BookingConfirmationTemplate = `
<h2 style="margin-top:0;color:#1a2b4a;">¡Reserva recibida!</h2>
<p>Hola {{.GuestName}},</p>
<p>Hemos recibido su reserva. Estos son los detalles:</p>
<table role="presentation" cellpadding="6" cellspacing="0" style="width:100%;border:1px solid #e5e7eb;border-radius:6px;">
  <tr><td style="color:#8a8f98;">Número de reserva</td><td style="text-align:right;font-weight:bold;">{{.BookingNumber}}</td></tr>
  <tr><td style="color:#8a8f98;">Llegada</td><td style="text-align:right;">{{.CheckInDate}}</td></tr>
  <tr><td style="color:#8a8f98;">Salida</td><td style="text-align:right;">{{.CheckOutDate}}</td></tr>
  <tr><td style="color:#8a8f98;">Noches</td><td style="text-align:right;">{{.Nights}}</td></tr>
  <tr><td style="color:#8a8f98;">Huéspedes</td><td style="text-align:right;">{{.Guests}}</td></tr>
  <tr><td style="color:#8a8f98;">Total</td><td style="text-align:right;font-weight:bold;">{{.Total}} COP</td></tr>
</table>
<p>Puede consultar su reserva en cualquier momento con el número {{.BookingNumber}}:</p>
<p><a href="{{.BookingURL}}" style="display:inline-block;background:#1a2b4a;color:#ffffff;padding:10px 24px;border-radius:6px;text-decoration:none;">Ver mi reserva</a></p>
<p>¡Le esperamos!</p>`

// BookingCancellationTemplate confirms a cancellation and its refund
const BookingCancellationTemplate = `
<h2 style="margin-top:0;color:#1a2b4a;">Reserva cancelada</h2>
<p>Hola {{.GuestName}},</p>
<p>Su reserva <strong>{{.BookingNumber}}</strong> ha sido cancelada.</p>
{{if .HasRefund}}
<table role="presentation" cellpadding="6" cellspacing="0" style="width:100%;border:1px solid #e5e7eb;border-radius:6px;">
  <tr><td style="color:#8a8f98;">Reembolso ({{.RefundPercent}}%)</td><td style="text-align:right;">{{.RefundAmount}} COP</td></tr>
  <tr><td style="color:#8a8f98;">Cargo por cancelación</td><td style="text-align:right;">{{.CancellationFee}} COP</td></tr>
  <tr><td style="color:#8a8f98;">Reembolso neto</td><td style="text-align:right;font-weight:bold;">{{.NetRefund}} COP</td></tr>
</table>
<p>El reembolso se procesará al medio de pago original en los próximos días hábiles.</p>
{{else}}
<p>Según la política de cancelación no aplica reembolso para esta reserva.</p>
{{end}}
<p>Esperamos verle pronto.</p>`

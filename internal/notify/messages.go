package notify

import (
	"fmt"
	"time"
)

const layoutBR = "02/01/2006 às 15:04"

func AppointmentScheduled(to, practitionerName string, at time.Time) Message {
	return Message{
		To:      to,
		Subject: "Consulta confirmada",
		Body: fmt.Sprintf(
			"Sua consulta com %s foi confirmada para %s.",
			practitionerName, at.Format(layoutBR),
		),
	}
}

func AppointmentCancelled(to, practitionerName string, at time.Time) Message {
	return Message{
		To:      to,
		Subject: "Consulta cancelada",
		Body: fmt.Sprintf(
			"Sua consulta com %s marcada para %s foi cancelada.",
			practitionerName, at.Format(layoutBR),
		),
	}
}

func AppointmentRequested(to, requesterName string, at time.Time) Message {
	return Message{
		To:      to,
		Subject: "Nova solicitação de consulta",
		Body: fmt.Sprintf(
			"%s solicitou uma consulta para %s.",
			requesterName, at.Format(layoutBR),
		),
	}
}

func RegistrationCode(to, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Código de verificação",
		Body: fmt.Sprintf(
			"Seu código de verificação para concluir o cadastro é %s. Ele expira em %d minutos.",
			code, int(ttl.Minutes()),
		),
	}
}

func RecoveryCode(to, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Recuperação de senha",
		Body: fmt.Sprintf(
			"Use o código %s para redefinir sua senha. Ele expira em %d minutos. "+
				"Se você não solicitou, ignore este e-mail.",
			code, int(ttl.Minutes()),
		),
	}
}

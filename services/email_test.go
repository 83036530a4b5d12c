package services

import (
	"testing"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/config"
	"github.com/stretchr/testify/assert"
)

func TestInitEmail(t *testing.T) {
	t.Run("Test Mode Logs Instead Of Sending", func(t *testing.T) {
		InitEmail(&config.Config{
			EmailFrom:     "no-reply@receptoria.cl",
			EmailFromName: "Receptoría",
			EmailTestMode: true,
		})
		assert.NotNil(t, Mailer)

		err := Mailer.SendRolTerminado("oficina@receptoria.cl", "R-2026-00001")
		assert.NoError(t, err)
	})

	t.Run("Without API Key Falls Back To Logging", func(t *testing.T) {
		InitEmail(&config.Config{
			EmailFrom: "no-reply@receptoria.cl",
		})
		assert.NotNil(t, Mailer)
		assert.False(t, Mailer.configured)

		err := Mailer.SendRolTerminado("oficina@receptoria.cl", "R-2026-00002")
		assert.NoError(t, err)
	})
}

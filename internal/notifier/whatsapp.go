package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
)

// WhatsAppSender delivers OTP codes through the WhatsApp Business Graph API.
type WhatsAppSender struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	log    *zap.Logger
}

func NewWhatsAppSender(cfg config.WhatsAppConfig, log *zap.Logger) *WhatsAppSender {
	return &WhatsAppSender{cfg: cfg, client: &http.Client{}, log: log}
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	Body string `json:"body"`
}

func (w *WhatsAppSender) SendCode(ctx context.Context, phoneNumber, code string) error {
	payload := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               phoneNumber,
		Type:             "text",
		Text:             whatsAppText{Body: fmt.Sprintf("Your verification code is %s", code)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode whatsapp message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", w.cfg.GraphURL, w.cfg.PhoneNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Warn("whatsapp send failed", zap.String("to", phoneNumber), zap.Error(err))
		return fmt.Errorf("whatsapp send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		w.log.Warn("whatsapp API returned non-success status",
			zap.String("to", phoneNumber),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("whatsapp API returned status %d", resp.StatusCode)
	}

	w.log.Info("whatsapp code sent", zap.String("to", phoneNumber))
	return nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MessageKind selects the customer message template.
type MessageKind string

const (
	MessageOrderAccepted MessageKind = "order_accepted"
	MessageOrderReady    MessageKind = "order_ready"
)

// Sender delivers a text message to a customer phone number.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}

// WhatsAppSender sends text messages through the WhatsApp Cloud API.
type WhatsAppSender struct {
	client        *http.Client
	apiURL        string
	accessToken   string
	phoneNumberID string
}

func NewWhatsAppSender(apiURL, accessToken, phoneNumberID string) *WhatsAppSender {
	return &WhatsAppSender{
		client:        &http.Client{Timeout: 10 * time.Second},
		apiURL:        strings.TrimRight(apiURL, "/"),
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
	}
}

type whatsappText struct {
	Body string `json:"body"`
}

type whatsappMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsappText `json:"text"`
}

func (s *WhatsAppSender) Send(ctx context.Context, phone, body string) error {
	to := NormalizePhone(phone)
	if to == "" {
		return fmt.Errorf("send whatsapp: empty phone number")
	}

	payload, err := json.Marshal(whatsappMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             whatsappText{Body: body},
	})
	if err != nil {
		return fmt.Errorf("encode whatsapp message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.apiURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// NormalizePhone strips spaces, dashes, parentheses and the leading plus
// sign, leaving the digits-only form the Cloud API expects.
func NormalizePhone(phone string) string {
	phone = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
	return strings.TrimPrefix(phone, "+")
}

// CustomerMessage renders the text sent to a customer. readyAt is shown in
// its own location; a zero readyAt reads as "soon".
func CustomerMessage(kind MessageKind, customerName, orderNumber, restaurantName string, readyAt time.Time) string {
	if customerName == "" {
		customerName = "there"
	}
	if restaurantName == "" {
		restaurantName = "Restaurant"
	}

	switch kind {
	case MessageOrderAccepted:
		readyTime := "soon"
		if !readyAt.IsZero() {
			readyTime = readyAt.Format("3:04 PM")
		}
		return fmt.Sprintf("Hi %s! 🍽️\n\nYour order #%s at %s has been accepted!\n\nEstimated ready time: %s\n\nThank you for ordering!",
			customerName, orderNumber, restaurantName, readyTime)
	case MessageOrderReady:
		return fmt.Sprintf("Hi %s! ✅\n\nGreat news! Your order #%s at %s is ready for pickup!\n\nSee you soon!",
			customerName, orderNumber, restaurantName)
	}
	return ""
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-reminders/internal/platform/httpclient"
)

const DefaultAPIBase = "https://api.telegram.org"

// Sender implementa messaging.Sender contra la Bot API (sendMessage).
type Sender struct {
	http  *httpclient.Client
	token string
}

type Options struct {
	Token   string
	APIBase string
	Timeout time.Duration
	// Transport opcional (tests).
	Transport http.RoundTripper
}

func NewSender(opts Options) (*Sender, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, errors.New("telegram: bot token required")
	}
	base := strings.TrimSpace(opts.APIBase)
	if base == "" {
		base = DefaultAPIBase
	}
	return &Sender{
		http: httpclient.New(httpclient.Options{
			Timeout:   opts.Timeout,
			BaseURL:   base,
			Transport: opts.Transport,
		}),
		token: token,
	}, nil
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Sender) SendText(ctx context.Context, chatID, text string) error {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return errors.New("telegram: chat id required")
	}

	var resp apiResponse
	err := s.http.DoJSON(ctx, http.MethodPost, "/bot"+s.token+"/sendMessage", nil, sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	}, &resp)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			return fmt.Errorf("telegram: send message: %w", err)
		}
		// Errores de transporte incluyen la URL, que lleva el token.
		return errors.New(strings.ReplaceAll("telegram: send message: "+err.Error(), s.token, "***"))
	}
	if !resp.OK {
		return fmt.Errorf("telegram: send message rejected: code=%d %s", resp.ErrorCode, resp.Description)
	}
	return nil
}

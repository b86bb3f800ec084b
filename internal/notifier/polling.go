package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	pollTimeout = 30 * time.Second
	pollBackoff = 5 * time.Second
)

// Command is a parsed chat command such as "/quote aapl".
type Command struct {
	Name string // lower-cased, bot mention stripped, e.g. "/quote"
	Args []string
}

// Arg returns the i-th argument or "".
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseCommand splits a message into a command and its arguments. Telegram
// group mentions ("/quote@StockPulseBot") are stripped from the name. Text
// that does not start with a slash gives an empty Name.
func ParseCommand(text string) Command {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{Args: fields}
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return Command{Name: strings.ToLower(name), Args: fields[1:]}
}

// CommandHandler answers a command. An empty reply sends nothing.
type CommandHandler func(cmd Command) string

type telegramChat struct {
	ID int64 `json:"id"`
}

type telegramMessage struct {
	Chat telegramChat `json:"chat"`
	Text string       `json:"text"`
}

type telegramUpdate struct {
	UpdateID int              `json:"update_id"`
	Message  *telegramMessage `json:"message"`
}

type updatesResponse struct {
	OK          bool             `json:"ok"`
	Description string           `json:"description"`
	Result      []telegramUpdate `json:"result"`
}

var errUpdatesRejected = errors.New("getUpdates rejected")

// fetchUpdates performs one long-poll request.
func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=%d", t.endpoint("getUpdates"), offset, int(pollTimeout.Seconds()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polling request: %w", err)
	}
	defer resp.Body.Close()

	var out updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !out.OK {
		return nil, fmt.Errorf("%w: %s", errUpdatesRejected, out.Description)
	}
	return out.Result, nil
}

// fromChat reports whether a message came from the configured chat.
func (t *TelegramNotifier) fromChat(m *telegramMessage) bool {
	return strconv.FormatInt(m.Chat.ID, 10) == t.ChatID
}

// StartPolling long-polls Telegram and answers commands from the configured
// chat. Messages from other chats are ignored. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: pollTimeout + 5*time.Second, Transport: t.Client.Transport}

	for ctx.Err() == nil {
		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("[WARN] %v", err)
			sleep(ctx, pollBackoff)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			if !t.fromChat(u.Message) {
				log.Printf("[WARN] ignoring message from chat %d", u.Message.Chat.ID)
				continue
			}
			cmd := ParseCommand(u.Message.Text)
			log.Printf("[INFO] received command %q %v", cmd.Name, cmd.Args)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(ctx, reply); err != nil {
					log.Printf("[ERROR] send reply: %v", err)
				}
			}
		}
	}
	log.Println("[INFO] Telegram polling stopped")
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

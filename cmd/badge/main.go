// Command badge is a small terminal companion for the notifications API. It
// polls the unread count for one account and keeps the viewed watermark in a
// local state file, so the indicator survives restarts. Typing "open" marks
// the notices as read on the server and clears the indicator, "wake" forces
// an immediate poll.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-faster/errors"

	"github.com/accordhr/accord-hrms/modules/notifications/badge"
	"github.com/accordhr/accord-hrms/pkg/configuration"
)

type apiClient struct {
	client   *http.Client
	baseURL  string
	actorID  string
	role     string
	employee string
	dept     string
}

func (c *apiClient) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Actor-Id", c.actorID)
	req.Header.Set("X-Actor-Role", c.role)
	req.Header.Set("X-Actor-Employee-Id", c.employee)
	req.Header.Set("X-Actor-Department", c.dept)
	return c.client.Do(req)
}

func (c *apiClient) UnreadCount(ctx context.Context) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, "/notifications/api/unread-count")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("unread count returned %d", resp.StatusCode)
	}
	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, errors.Wrap(err, "decode unread count")
	}
	return body.Count, nil
}

func (c *apiClient) markViewed(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/notifications/api/viewed")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("mark viewed returned %d", resp.StatusCode)
	}
	return nil
}

func main() {
	var (
		baseURL   = flag.String("server", "http://localhost:3200", "server base url")
		actorID   = flag.String("actor", "", "acting user id")
		role      = flag.String("role", "employee", "acting user role")
		employee  = flag.String("employee", "", "linked employee id")
		dept      = flag.String("department", "", "employee department")
		stateFile = flag.String("state", defaultStatePath(), "viewed watermark file")
	)
	flag.Parse()

	conf := configuration.Use()
	logger := conf.Logger()

	client := &apiClient{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  strings.TrimRight(*baseURL, "/"),
		actorID:  *actorID,
		role:     *role,
		employee: *employee,
		dept:     *dept,
	}
	controller := badge.NewController(
		client,
		badge.NewFileWatermarkStore(*stateFile),
		conf.Notifications.BadgePollInterval,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			switch strings.TrimSpace(scanner.Text()) {
			case "open":
				if err := client.markViewed(ctx); err != nil {
					logger.WithError(err).Warn("failed to mark notices viewed")
				}
				controller.Open()
				render(controller.Snapshot())
			case "wake":
				controller.Wake()
			case "quit", "exit":
				stop()
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(conf.Notifications.BadgePollInterval)
		defer ticker.Stop()
		last := controller.Snapshot()
		render(last)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if snap := controller.Snapshot(); snap != last {
					render(snap)
					last = snap
				}
			}
		}
	}()

	controller.Run(ctx)
}

func render(snap badge.Snapshot) {
	switch snap.State {
	case badge.StateAlerting:
		fmt.Printf("notifications: %d unread\n", snap.Count)
	case badge.StateCleared:
		fmt.Println("notifications: cleared")
	default:
		fmt.Println("notifications: none")
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".badge-viewed"
	}
	return home + "/.accord-hrms/badge-viewed"
}

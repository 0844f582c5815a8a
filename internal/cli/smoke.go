package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type smokeStep struct {
	title  string
	method string
	path   string
	token  string
	body   interface{}
}

// NewSmokeCommand creates the 'carectl smoke' command
func NewSmokeCommand() *cobra.Command {
	var (
		baseURL string
		token   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Exercise every endpoint of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			return runSmoke(cmd.OutOrStdout(), client, baseURL, token)
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:3000/api", "API base URL")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for log reads")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "per-request timeout")

	return cmd
}

func runSmoke(w io.Writer, client *http.Client, baseURL, token string) error {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	steps := []smokeStep{
		{title: "Health", method: http.MethodGet, path: "/health"},
		{title: "Intake options", method: http.MethodGet, path: "/intake/options"},
		{title: "Analyze support request", method: http.MethodPost, path: "/analyze", body: map[string]string{
			"name":        "Asha",
			"cancerType":  "Breast Cancer",
			"role":        "Caregiver",
			"supportType": "Financial Assistance",
			"message":     "My mother starts chemotherapy next week and we cannot afford the travel.",
		}},
		{title: "Ask FAQ", method: http.MethodPost, path: "/faq", body: map[string]string{
			"question": "Do you help with transport to the hospital?",
		}},
		{title: "Log unanswered query", method: http.MethodPost, path: "/faq/log", body: map[string]interface{}{
			"query": "smoke test", "matched": false, "type": "unanswered",
		}},
		{title: "Read query log", method: http.MethodGet, path: "/faq/log", token: token},
		{title: "FAQ categories", method: http.MethodGet, path: "/faq/categories"},
	}

	cyan.Fprintf(w, "Smoke testing %s\n", baseURL)

	failed := 0
	for i, step := range steps {
		yellow.Fprintf(w, "\n%d. %s (%s %s)\n", i+1, step.title, step.method, step.path)

		status, body, err := sendRequest(client, step.method, baseURL+step.path, step.token, step.body)
		if err != nil {
			red.Fprintf(w, "Failed: %v\n", err)
			failed++
			continue
		}

		if status >= 200 && status < 300 {
			green.Fprintf(w, "Status: %d\n", status)
		} else {
			red.Fprintf(w, "Status: %d\n", status)
			failed++
		}
		prettyPrint(w, body)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(steps))
	}
	green.Fprintln(w, "\nAll steps passed")
	return nil
}

func sendRequest(client *http.Client, method, url, token string, body interface{}) (int, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, err
}

func prettyPrint(w io.Writer, raw []byte) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Fprintln(w, string(raw))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(w, string(raw))
		return
	}
	fmt.Fprintln(w, string(b))
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Gate-staff tool: verify and check in tickets by code against a running
// checkout service.

type options struct {
	Addr       string `short:"a" long:"addr" default:"http://localhost:8080" description:"checkout service address"`
	EventID    string `short:"e" long:"event" required:"true" description:"event id"`
	VerifyOnly bool   `long:"verify-only" description:"look the ticket up without checking it in"`

	Args struct {
		Codes []string `positional-arg-name:"code" required:"1"`
	} `positional-args:"true"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	path := fmt.Sprintf("%s/events/%s/check-in", opts.Addr, opts.EventID)
	if opts.VerifyOnly {
		path += "/verify"
	}

	exitCode := 0
	for _, code := range opts.Args.Codes {
		if err := submit(client, path, code); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", code, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func submit(client *http.Client, path, code string) error {
	payload, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return err
	}

	resp, err := client.Post(path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Printf("%s: ok\n", code)
	case http.StatusConflict:
		fmt.Printf("%s: already checked in (%v)\n", code, body["checked_in_at"])
	default:
		return fmt.Errorf("status %d: %v", resp.StatusCode, body["message"])
	}
	return nil
}

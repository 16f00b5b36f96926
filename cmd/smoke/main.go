// Package main drives a running QA helper server end to end: it uploads a
// small fixture set, runs a compare, walks one edit cycle and pulls a CSV
// export. Exit code 0 means every step behaved.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	fixtureDict = "English,Korean,Russian\nSave,저장,Сохранить\nCancel,취소,Отмена\n"
	fixtureKo   = `{"Save":"저장","Cancel":"취수"}`
	fixtureRu   = `{"Save":"Сохранить","Cancel":"Отмена"}`
)

func main() {
	base := flag.String("base", "http://localhost:8170", "server base URL")
	flag.Parse()

	if err := run(*base); err != nil {
		fmt.Fprintf(os.Stderr, "smoke failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("smoke ok")
}

func run(base string) error {
	c := resty.New().
		SetBaseURL(base).
		SetTimeout(30 * time.Second)

	if err := expectOK(c.R().Get("/api/health")); err != nil {
		return fmt.Errorf("health: %w", err)
	}

	uploads := []struct {
		alias, filename, body string
	}{
		{"dictionary", "dict.csv", fixtureDict},
		{"ko", "ko.json", fixtureKo},
		{"ru", "ru.json", fixtureRu},
	}
	for _, u := range uploads {
		resp, err := c.R().
			SetFileReader("file", u.filename, stringsReader(u.body)).
			Post("/api/upload/" + u.alias)
		if err := expectOK(resp, err); err != nil {
			return fmt.Errorf("upload %s: %w", u.alias, err)
		}
	}

	var compare struct {
		Counters struct {
			Total   int `json:"total"`
			Overall int `json:"overall_mismatch"`
		} `json:"counters"`
	}
	resp, err := c.R().SetBody(map[string]bool{"include_en_keys": false}).
		SetResult(&compare).Post("/api/compare")
	if err := expectOK(resp, err); err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	if compare.Counters.Total != 2 {
		return fmt.Errorf("compare: total = %d, want 2", compare.Counters.Total)
	}
	// en.json was not uploaded: nothing can be overall-clean.
	if compare.Counters.Overall != 2 {
		return fmt.Errorf("compare: overall mismatch = %d, want 2", compare.Counters.Overall)
	}

	if err := expectOK(c.R().Post("/api/edit/start")); err != nil {
		return fmt.Errorf("edit start: %w", err)
	}
	resp, err = c.R().SetBody(map[string]any{
		"seq": 2, "column": "ko.json", "value": "취소",
	}).Put("/api/edit/cell")
	if err := expectOK(resp, err); err != nil {
		return fmt.Errorf("edit cell: %w", err)
	}

	var review struct {
		Proposals []struct {
			Column   string `json:"column"`
			NewValue string `json:"new_value"`
		} `json:"proposals"`
	}
	resp, err = c.R().SetResult(&review).Post("/api/edit/complete")
	if err := expectOK(resp, err); err != nil {
		return fmt.Errorf("edit complete: %w", err)
	}
	if len(review.Proposals) != 1 || review.Proposals[0].NewValue != "취소" {
		return fmt.Errorf("edit complete: proposals = %+v", review.Proposals)
	}
	if err := expectOK(c.R().Post("/api/edit/accept")); err != nil {
		return fmt.Errorf("edit accept: %w", err)
	}

	var counters struct {
		KoMismatch int `json:"ko_mismatch"`
	}
	resp, err = c.R().SetResult(&counters).Get("/api/counters")
	if err := expectOK(resp, err); err != nil {
		return fmt.Errorf("counters: %w", err)
	}
	if counters.KoMismatch != 0 {
		return fmt.Errorf("counters: ko mismatch = %d after fix", counters.KoMismatch)
	}

	resp, err = c.R().Get("/api/export/csv")
	if err := expectOK(resp, err); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if v := resp.Header().Get("X-Export-Version"); v == "" {
		return fmt.Errorf("export: missing version header")
	}
	if len(resp.Body()) == 0 {
		return fmt.Errorf("export: empty body")
	}
	return nil
}

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func expectOK(resp *resty.Response, errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if resp.IsError() {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

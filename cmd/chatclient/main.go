// Chat client - smoke-tests a running service from the command line.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:5001", "service base URL")
	message := flag.String("message", "Hello, how are you?", "chat message to send")
	voice := flag.Bool("voice", false, "request synthesized audio")
	audioFile := flag.String("transcribe", "", "audio file to transcribe instead of chatting")
	flag.Parse()

	client := &http.Client{Timeout: 120 * time.Second}

	if *audioFile != "" {
		transcribe(client, *baseURL, *audioFile)
		return
	}

	body, err := json.Marshal(map[string]any{"message": *message, "voice": *voice})
	if err != nil {
		log.Fatalf("marshal request: %v", err)
	}

	resp, err := client.Post(*baseURL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("chat request failed: %v", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	log.Printf("status=%d body=%s", resp.StatusCode, out)

	var parsed struct {
		AudioURL string `json:"audio_url"`
	}
	if err := json.Unmarshal(out, &parsed); err == nil && parsed.AudioURL != "" {
		log.Printf("audio available at %s%s", *baseURL, parsed.AudioURL)
	}
}

func transcribe(client *http.Client, baseURL, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open audio file: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", filepath.Base(path))
	if err != nil {
		log.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		log.Fatalf("copy audio: %v", err)
	}
	if err := mw.Close(); err != nil {
		log.Fatalf("close multipart writer: %v", err)
	}

	resp, err := client.Post(baseURL+"/transcribe", mw.FormDataContentType(), &buf)
	if err != nil {
		log.Fatalf("transcribe request failed: %v", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("status=%d body=%s\n", resp.StatusCode, out)
}

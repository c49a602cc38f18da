// ws_smoke registers a throwaway account against a running server, opens the
// activity feed, claims the daily reward over HTTP and verifies the event
// arrives on the socket.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s/api/v1", port)

	username := fmt.Sprintf("smoke%d", time.Now().UnixNano()%1000000)
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@smoke.local",
		"password": "smoke-password",
	})
	resp, err := http.Post(base+"/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("register: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("register: status %d: %s", resp.StatusCode, raw)
	}

	var reg struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &reg); err != nil {
		log.Fatalf("register response: %v", err)
	}

	wsURL := fmt.Sprintf("ws://localhost:%s/ws/feed?token=%s", port, reg.Token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("ws dial: %v", err)
	}
	defer conn.Close()

	req, _ := http.NewRequest("POST", base+"/daily-rewards/claim", nil)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("claim: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("claim: status %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("feed read: %v", err)
	}

	fmt.Printf("feed event: %s\n", msg)
	fmt.Println("ws smoke OK")
}

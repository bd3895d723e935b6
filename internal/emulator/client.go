package emulator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/constants"
)

// Button is a GBA button name as the mGBA-http API expects it.
type Button string

const (
	ButtonA      Button = "A"
	ButtonB      Button = "B"
	ButtonStart  Button = "Start"
	ButtonSelect Button = "Select"
	ButtonUp     Button = "Up"
	ButtonDown   Button = "Down"
	ButtonLeft   Button = "Left"
	ButtonRight  Button = "Right"
	ButtonL      Button = "L"
	ButtonR      Button = "R"
)

// FrameDuration approximates one GBA frame at ~60 FPS. Used to convert
// frame-based delays into wall-clock waits.
const FrameDuration = 16700 * time.Microsecond

// Memory is the synchronous byte-oriented read/write transport the snapshot
// reader and battle controller consume. Reads carry no atomicity guarantee
// across addresses; callers must tolerate torn multi-byte reads.
type Memory interface {
	Read8(ctx context.Context, addr uint32) (byte, error)
	Read16(ctx context.Context, addr uint32) (uint16, error)
	Read32(ctx context.Context, addr uint32) (uint32, error)
	ReadRange(ctx context.Context, addr uint32, n int) ([]byte, error)
	Write8(ctx context.Context, addr uint32, value byte) error
}

// Input delivers button presses. Send completes after delivery, not after
// the press takes effect in-game.
type Input interface {
	Tap(ctx context.Context, b Button) error
	TapSequence(ctx context.Context, buttons []Button, interPress time.Duration) error
}

// Client talks to the mGBA-http REST API (v0.8.1).
type Client struct {
	baseURL string
	http    *http.Client

	// screenshotDir receives PNG files written by the emulator process;
	// it must be a path both processes can see.
	screenshotDir string
}

// NewClient builds a client for the given mGBA-http base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 10 * time.Second},
		screenshotDir: os.TempDir(),
	}
}

// SetScreenshotDir overrides where screenshot files are exchanged with the
// emulator process.
func (c *Client) SetScreenshotDir(dir string) { c.screenshotDir = dir }

// Connected reports whether mGBA-http answers at all.
func (c *Client) Connected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	body, err := c.get(ctx, constants.MgbaCurrentFramePath, nil)
	return err == nil && body != ""
}

// GameCode returns the loaded game's code (e.g. "BPRE" for FireRed).
func (c *Client) GameCode(ctx context.Context) (string, error) {
	body, err := c.get(ctx, constants.MgbaGameCodePath, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(body), nil
}

// Read8 reads a single byte of emulator memory.
func (c *Client) Read8(ctx context.Context, addr uint32) (byte, error) {
	body, err := c.get(ctx, constants.MgbaRead8Path, url.Values{"address": {strconv.FormatUint(uint64(addr), 10)}})
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(body), 10, 8)
	if err != nil {
		return 0, fmt.Errorf("emulator returned malformed byte at 0x%08X: %w", addr, err)
	}
	return byte(v), nil
}

// ReadRange reads n consecutive bytes starting at addr. The v0.8.1 API only
// exposes byte-wise reads, so this issues one request per byte.
func (c *Client) ReadRange(ctx context.Context, addr uint32, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := c.Read8(ctx, addr+uint32(i))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// Read16 reads a little-endian 16-bit word.
func (c *Client) Read16(ctx context.Context, addr uint32) (uint16, error) {
	data, err := c.ReadRange(ctx, addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(data[0]) | uint16(data[1])<<8, nil
}

// Read32 reads a little-endian 32-bit word.
func (c *Client) Read32(ctx context.Context, addr uint32) (uint32, error) {
	data, err := c.ReadRange(ctx, addr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24, nil
}

// Write8 writes a single byte of emulator memory.
func (c *Client) Write8(ctx context.Context, addr uint32, value byte) error {
	_, err := c.post(ctx, constants.MgbaWrite8Path, url.Values{
		"address": {strconv.FormatUint(uint64(addr), 10)},
		"value":   {strconv.Itoa(int(value))},
	})
	return err
}

// Tap presses a button briefly.
func (c *Client) Tap(ctx context.Context, b Button) error {
	_, err := c.post(ctx, constants.MgbaButtonTapPath, url.Values{"button": {string(b)}})
	return err
}

// TapSequence presses each button in order, waiting interPress between them.
func (c *Client) TapSequence(ctx context.Context, buttons []Button, interPress time.Duration) error {
	for _, b := range buttons {
		if err := c.Tap(ctx, b); err != nil {
			return err
		}
		select {
		case <-time.After(interPress):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Screenshot captures the current frame as PNG bytes. The endpoint writes
// the file to a path on the emulator host, so the client hands it a unique
// path inside screenshotDir and reads the file back after a short wait.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	name := fmt.Sprintf("mgba_screenshot_%d.png", time.Now().UnixMilli())
	path := filepath.Join(c.screenshotDir, name)
	defer os.Remove(path)

	if _, err := c.post(ctx, constants.MgbaScreenshotPath, url.Values{"path": {path}}); err != nil {
		return nil, err
	}

	// Give the emulator time to flush the file.
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("screenshot file was not written to %s: %w", path, err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (string, error) {
	return c.do(ctx, http.MethodGet, path, params)
}

func (c *Client) post(ctx context.Context, path string, params url.Values) (string, error) {
	return c.do(ctx, http.MethodPost, path, params)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values) (string, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mgba-http request %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mgba-http %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

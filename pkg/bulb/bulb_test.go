package bulb

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// fakeDevice is an in-process light: one TCP listener answering the
// line protocol through a per-test respond function.
type fakeDevice struct {
	t        *testing.T
	listener net.Listener
	host     string
	port     uint16

	// lines receives every raw request line the device reads.
	lines chan string

	// conns receives each accepted connection, for tests that push
	// notifications or close the socket from the device side.
	conns chan net.Conn

	// respond maps one request to one reply line. Empty reply means
	// stay silent. Guarded by mu so tests can swap it mid-connection.
	mu      sync.Mutex
	respond func(id uint64, method string, params []any) string
}

func (d *fakeDevice) setRespond(f func(id uint64, method string, params []any) string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.respond = f
}

func (d *fakeDevice) responder() func(id uint64, method string, params []any) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.respond
}

func okReply(id uint64, _ string, _ []any) string {
	return fmt.Sprintf(`{"id":%d, "result":["ok"]}`, id)
}

func startFakeDevice(t *testing.T, respond func(id uint64, method string, params []any) string) *fakeDevice {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	host, portStr, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		t.Fatalf("listener address: %v", err)
	}
	port, _ := strconv.ParseUint(portStr, 10, 16)

	d := &fakeDevice{
		t:        t,
		listener: listener,
		host:     host,
		port:     uint16(port),
		lines:    make(chan string, 16),
		conns:    make(chan net.Conn, 2),
		respond:  respond,
	}
	go d.acceptLoop()
	return d
}

func (d *fakeDevice) acceptLoop() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		d.conns <- conn
		go d.serve(conn)
	}
}

func (d *fakeDevice) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		d.lines <- line

		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			d.t.Errorf("device received bad line %q: %v", line, err)
			return
		}
		respond := d.responder()
		if respond == nil {
			continue
		}
		if reply := respond(req.ID, req.Method, req.Params); reply != "" {
			if _, err := conn.Write([]byte(reply + "\r\n")); err != nil {
				return
			}
		}
	}
}

func (d *fakeDevice) nextLine(t *testing.T) string {
	t.Helper()
	select {
	case line := <-d.lines:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("device received no line")
		return ""
	}
}

func (d *fakeDevice) connect(t *testing.T) *Bulb {
	t.Helper()
	b, err := Connect(context.Background(), d.host, d.port)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestGetProp(t *testing.T) {
	device := startFakeDevice(t, func(id uint64, method string, _ []any) string {
		if method != "get_prop" {
			t.Errorf("method = %q, want get_prop", method)
		}
		return fmt.Sprintf(`{"id":%d, "result":["on", "100"]}`, id)
	})
	b := device.connect(t)

	values, err := b.GetProp(context.Background(), wire.PropertyPower, wire.PropertyBright)
	if err != nil {
		t.Fatalf("GetProp: %v", err)
	}
	want := []string{"on", "100"}
	if len(values) != len(want) || values[0] != want[0] || values[1] != want[1] {
		t.Fatalf("values = %v, want %v", values, want)
	}

	line := device.nextLine(t)
	wantLine := `{"id":1,"method":"get_prop","params":["power","bright"]}`
	if line != wantLine {
		t.Fatalf("request line = %s, want %s", line, wantLine)
	}
}

func TestSetPowerWireFormat(t *testing.T) {
	device := startFakeDevice(t, okReply)
	b := device.connect(t)

	err := b.SetPower(context.Background(), wire.PowerOn, wire.EffectSmooth, 500*time.Millisecond, wire.ModeNormal)
	if err != nil {
		t.Fatalf("SetPower: %v", err)
	}

	line := device.nextLine(t)
	wantLine := `{"id":1,"method":"set_power","params":["on","smooth",500,0]}`
	if line != wantLine {
		t.Fatalf("request line = %s, want %s", line, wantLine)
	}
}

func TestCronAdd(t *testing.T) {
	device := startFakeDevice(t, okReply)
	b := device.connect(t)

	// 90s rounds up to 2 minutes on the wire.
	if err := b.CronAdd(context.Background(), wire.CronPowerOff, 90*time.Second); err != nil {
		t.Fatalf("CronAdd: %v", err)
	}
	line := device.nextLine(t)
	wantLine := `{"id":1,"method":"cron_add","params":[0,2]}`
	if line != wantLine {
		t.Fatalf("request line = %s, want %s", line, wantLine)
	}

	if err := b.CronAdd(context.Background(), wire.CronPowerOff, -time.Minute); err == nil {
		t.Fatal("CronAdd accepted a negative delay")
	}
}

// TestRequestFraming checks the raw bytes on the socket: one request
// is one JSON line with a single CRLF terminator.
func TestRequestFraming(t *testing.T) {
	local, remote := net.Pipe()
	b, err := Attach(local)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	defer b.Close()
	b.NoResponse()

	done := make(chan error, 1)
	go func() {
		done <- b.SetPower(context.Background(), wire.PowerOn, wire.EffectSmooth, 500*time.Millisecond, wire.ModeNormal)
	}()

	buf := make([]byte, 256)
	n, err := remote.Read(buf)
	if err != nil {
		t.Fatalf("read request: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("SetPower: %v", err)
	}

	got := string(buf[:n])
	want := `{"id":1,"method":"set_power","params":["on","smooth",500,0]}` + "\r\n"
	if got != want {
		t.Fatalf("wire bytes = %q, want %q", got, want)
	}
}

func TestUnsupportedMethod(t *testing.T) {
	device := startFakeDevice(t, func(id uint64, _ string, _ []any) string {
		return fmt.Sprintf(`{"id":%d, "error":{"code":-1, "message":"unsupported method"}}`, id)
	})
	b := device.connect(t)

	err := b.Toggle(context.Background())
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("err = %v, want *DeviceError", err)
	}
	if devErr.Code != -1 || devErr.Message != "unsupported method" {
		t.Fatalf("device error = %+v", devErr)
	}
}

func TestNoResponse(t *testing.T) {
	device := startFakeDevice(t, nil)
	b := device.connect(t).NoResponse()

	// Returns without any reply from the device.
	if err := b.Off(context.Background()); err != nil {
		t.Fatalf("Off: %v", err)
	}

	line := device.nextLine(t)
	wantLine := `{"id":1,"method":"set_power","params":["off","smooth",500,0]}`
	if line != wantLine {
		t.Fatalf("request line = %s, want %s", line, wantLine)
	}

	// Back to request/reply on the same connection.
	device.setRespond(okReply)
	if err := b.GetResponse().Toggle(context.Background()); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got := device.nextLine(t); !strings.Contains(got, `"id":2`) {
		t.Fatalf("second request line = %s, want id 2", got)
	}
}

func TestNotifications(t *testing.T) {
	device := startFakeDevice(t, okReply)
	b := device.connect(t)
	notifs := b.Notifications()

	conn := <-device.conns
	push := `{"method":"props","params":{"power":"on","bright":"75"}}` + "\r\n"
	if _, err := conn.Write([]byte(push)); err != nil {
		t.Fatalf("push notification: %v", err)
	}

	select {
	case n := <-notifs:
		if n.Method != "props" {
			t.Fatalf("method = %q, want props", n.Method)
		}
		if n.Params["power"] != "on" || n.Params["bright"] != "75" {
			t.Fatalf("params = %v", n.Params)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestNotificationInterleavedWithReply(t *testing.T) {
	device := startFakeDevice(t, func(id uint64, _ string, _ []any) string {
		// Notification first, then the reply, on the same stream.
		return `{"method":"props","params":{"power":"on"}}` + "\r\n" +
			fmt.Sprintf(`{"id":%d, "result":["ok"]}`, id)
	})
	b := device.connect(t)
	notifs := b.Notifications()

	if err := b.On(context.Background()); err != nil {
		t.Fatalf("On: %v", err)
	}
	select {
	case n := <-notifs:
		if n.Params["power"] != "on" {
			t.Fatalf("params = %v", n.Params)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestDeviceCloseFailsPendingCall(t *testing.T) {
	device := startFakeDevice(t, nil)
	b := device.connect(t)

	done := make(chan error, 1)
	go func() {
		_, err := b.GetProp(context.Background(), wire.PropertyPower)
		done <- err
	}()

	device.nextLine(t)
	conn := <-device.conns
	conn.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrConnectionClosed) {
			t.Fatalf("err = %v, want ErrConnectionClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pending call not drained")
	}
}

func TestStartMusic(t *testing.T) {
	musicLines := make(chan string, 4)
	device := startFakeDevice(t, nil)
	device.setRespond(func(id uint64, method string, params []any) string {
		if method != "set_music" {
			return okReply(id, method, params)
		}
		if len(params) != 3 {
			device.t.Errorf("set_music params = %v", params)
			return fmt.Sprintf(`{"id":%d, "error":{"code":-1, "message":"bad params"}}`, id)
		}
		host, _ := params[1].(string)
		port, _ := params[2].(float64)

		// Connect back like a real device and record what arrives.
		go func() {
			conn, err := net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
			if err != nil {
				device.t.Errorf("music dial back: %v", err)
				return
			}
			defer conn.Close()
			scanner := bufio.NewScanner(conn)
			for scanner.Scan() {
				musicLines <- strings.TrimRight(scanner.Text(), "\r")
			}
		}()
		return okReply(id, method, params)
	})
	b := device.connect(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	music, err := b.StartMusic(ctx, "127.0.0.1")
	if err != nil {
		t.Fatalf("StartMusic: %v", err)
	}
	defer music.Close()

	// Music commands transmit without replies.
	if err := music.SetRGB(ctx, 0xFF0000, wire.EffectSudden, 0); err != nil {
		t.Fatalf("SetRGB: %v", err)
	}

	select {
	case line := <-musicLines:
		want := `{"id":1,"method":"set_rgb","params":[16711680,"sudden",0]}`
		if line != want {
			t.Fatalf("music line = %s, want %s", line, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("device received no music line")
	}
}

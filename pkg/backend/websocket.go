// ABOUTME: WebSocket terminal sink
// ABOUTME: Sends a JSON stream header, then one binary message of serialized samples per write
package backend

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/sinky-audio/sinky/internal/log"
	"github.com/sinky-audio/sinky/pkg/audio"
	"github.com/sinky-audio/sinky/pkg/audio/encode"
	"github.com/sinky-audio/sinky/pkg/sink"
)

// StreamHeader is the first message sent on a WebSocket stream
type StreamHeader struct {
	Format     string `json:"format"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// WebSocketSink streams serialized samples to a WebSocket server
type WebSocketSink[S audio.Sample] struct {
	url    string
	header StreamHeader
	conn   *websocket.Conn
	enc    *encode.PCMEncoder[S]
	log    *logrus.Entry
}

// NewWebSocketSink creates a sink for a ws:// or wss:// URL. The connection
// is made on Start.
func NewWebSocketSink[S audio.Sample](rawURL string, params audio.Params, format audio.Format[S]) (*WebSocketSink[S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("invalid websocket url %q: scheme must be ws or wss", rawURL)
	}

	return &WebSocketSink[S]{
		url: u.String(),
		header: StreamHeader{
			Format:     format.String(),
			SampleRate: params.SampleRate,
			Channels:   params.Channels,
		},
		enc: encode.NewPCM(format),
		log: log.WithComponent("backend").WithFields(logrus.Fields{
			"backend": "websocket",
			"url":     u.String(),
		}),
	}, nil
}

// Start dials the server and sends the stream header
func (s *WebSocketSink[S]) Start() error {
	s.log.Debug("Connecting")

	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	if err := conn.WriteJSON(s.header); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send stream header: %w", err)
	}

	s.conn = conn
	return nil
}

// Write sends data as one binary message
func (s *WebSocketSink[S]) Write(data []S) error {
	b, err := s.enc.Encode(data)
	if err != nil {
		return sink.Wrap("write", "websocket", err)
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return sink.Wrap("write", "websocket", err)
	}
	return nil
}

// Stop sends a close frame and closes the connection
func (s *WebSocketSink[S]) Stop() error {
	if s.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(5*time.Second))
	if cerr := s.conn.Close(); err == nil {
		err = cerr
	}
	s.conn = nil
	return sink.Wrap("stop", "websocket", err)
}

// OpenWebSocket assembles a chain streaming cfg.Format samples to rawURL
func OpenWebSocket(cfg Config, rawURL string, maker Maker) (*sink.Chain[float32], error) {
	cfg = cfg.Normalize()

	var c *sink.Chain[float32]
	var err error
	switch cfg.Format {
	case audio.KindF32:
		c, err = wsChain[float32](rawURL, cfg, audio.F32{}, maker)
	case audio.KindS16:
		c, err = wsChain[int16](rawURL, cfg, audio.S16{}, maker)
	case audio.KindS32:
		c, err = wsChain[int32](rawURL, cfg, audio.S32{}, maker)
	case audio.KindS24:
		c, err = wsChain[audio.Int24](rawURL, cfg, audio.S24{}, maker)
	case audio.KindS24Packed:
		c, err = wsChain[audio.Int24Packed](rawURL, cfg, audio.S24Packed{}, maker)
	default:
		err = unsupported("websocket", cfg.Format)
	}
	if err != nil {
		return nil, err
	}

	logOpened("websocket", cfg, c)
	return c, nil
}

func wsChain[S audio.Sample](rawURL string, cfg Config, format audio.Format[S], maker Maker) (*sink.Chain[float32], error) {
	s, err := NewWebSocketSink[S](rawURL, cfg.Params, format)
	if err != nil {
		return nil, err
	}
	return assemble[S](s, format, maker), nil
}

package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/willbeason/mandelview/pkg/config"
	"github.com/willbeason/mandelview/pkg/frame"
	"github.com/willbeason/mandelview/pkg/view"
)

// session is one connected client. It owns its renderer, so sessions never
// share a pixel buffer.
type session struct {
	conn *websocket.Conn
	log  *slog.Logger

	renderer *frame.Renderer
	camera   *view.Camera
	contrast view.Contrast
}

func newSession(conn *websocket.Conn, cfg config.Config, log *slog.Logger) (*session, error) {
	camera, err := view.NewCamera(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	s := &session{
		conn: conn,
		log:  log,
		renderer: frame.NewRenderer(
			frame.WithCapacity(cfg.MaxPixels),
			frame.WithIterationCap(cfg.IterationCap),
		),
		camera:   camera,
		contrast: view.Contrast{Bias: cfg.Bias, Target: cfg.Target},
	}
	if err := s.renderer.Configure(s.contrast.Bias, s.contrast.Target); err != nil {
		return nil, err
	}
	return s, nil
}

// run sends the first frame, then answers commands until the client leaves.
func (s *session) run(ctx context.Context) error {
	if err := s.sendFrame(ctx); err != nil {
		return err
	}

	for {
		var cmd Command
		if err := wsjson.Read(ctx, s.conn, &cmd); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}

		if err := s.apply(cmd); err != nil {
			if err := s.reject(ctx, cmd, err); err != nil {
				return err
			}
			continue
		}

		err := s.sendFrame(ctx)
		switch {
		case errors.Is(err, frame.ErrInvalidViewport), errors.Is(err, frame.ErrCapacityExceeded):
			if err := s.reject(ctx, cmd, err); err != nil {
				return err
			}
		case err != nil:
			return err
		}
	}
}

// reject tells the client why cmd was not applied. The session goes on.
func (s *session) reject(ctx context.Context, cmd Command, err error) error {
	s.log.Debug("command rejected", "op", cmd.Op, "err", err)
	return wsjson.Write(ctx, s.conn, s.status(err))
}

func (s *session) apply(cmd Command) error {
	switch cmd.Op {
	case OpFrame:
		return nil

	case OpResize:
		if int64(cmd.Width)*int64(cmd.Height) > int64(s.renderer.Buffer().Cap()) {
			return fmt.Errorf("%w: %dx%d", frame.ErrCapacityExceeded, cmd.Width, cmd.Height)
		}
		return s.camera.Resize(cmd.Width, cmd.Height)

	case OpZoom:
		next := *s.camera
		next.ZoomAt(cmd.X, cmd.Y, cmd.Out)
		return s.moveTo(&next)

	case OpPan:
		next := *s.camera
		next.Pan(cmd.X, cmd.Y)
		return s.moveTo(&next)

	case OpBias:
		next := s.contrast
		next.Step(cmd.Delta)
		if err := s.renderer.Configure(next.Bias, next.Target); err != nil {
			return err
		}
		s.contrast = next
		return nil

	case OpConfigure:
		if err := s.renderer.Configure(cmd.Bias, cmd.Target); err != nil {
			return err
		}
		s.contrast = view.Contrast{Bias: cmd.Bias, Target: cmd.Target}
		return nil

	default:
		return fmt.Errorf("%w: %q", errUnknownOp, cmd.Op)
	}
}

// moveTo switches to the view of next if it can be rendered.
func (s *session) moveTo(next *view.Camera) error {
	if err := next.Viewport().Validate(); err != nil {
		return err
	}
	*s.camera = *next
	return nil
}

func (s *session) status(err error) Status {
	t := s.renderer.Contrast()
	st := Status{
		Bias:         t.Bias(),
		Target:       t.Target(),
		Iterations:   s.renderer.Evaluator().Limit(),
		ZoomExponent: s.camera.ZoomExponent(),
	}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

// sendFrame renders the current view and writes it as one binary message
// straight from the pixel buffer.
func (s *session) sendFrame(ctx context.Context) error {
	if _, err := s.renderer.RenderContext(ctx, s.camera.Viewport()); err != nil {
		return err
	}
	buf := s.renderer.Buffer()

	w, err := s.conn.Writer(ctx, websocket.MessageBinary)
	if err != nil {
		return err
	}
	if _, err := w.Write(encodeHeader(buf.Width(), buf.Height())); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	return w.Close()
}

package rmi

import (
	"net"
	"time"

	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"

	"github.com/Brijeshlakkad/Distributed-File-System/internal/metrics"
)

// acceptLoop runs for the lifetime of the skeleton: accept a socket, hand it
// to a fresh worker goroutine, repeat. On accept failure, if the skeleton is
// still alive, report to ListenError and, per its return value, either
// resume or wind down; if the skeleton was explicitly stopped, exit quietly.
func (s *Skeleton[T]) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isRunning() {
				return
			}
			resume := s.ListenError(err)
			if !resume {
				s.mu.Lock()
				if s.state == stateRunning {
					s.state = stateStopped
				}
				s.mu.Unlock()
				_ = s.listener.Close()
				go s.fireStopped(err)
				return
			}
			continue
		}

		s.wg.Add(1)
		go s.serviceConnection(conn)
	}
}

// serviceConnection is the per-connection worker: it reads one request,
// dispatches it, writes one response, and closes the connection in every
// exit path.
func (s *Skeleton[T]) serviceConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	correlationID := uuid.NewV4().String()
	log := s.logger.With(zap.String("correlation_id", correlationID), zap.String("remote", conn.RemoteAddr().String()))

	defer func() {
		if r := recover(); r != nil {
			log.Error("service worker panic", zap.Any("panic", r))
			s.ServiceError(fmtPanicError(r))
		}
	}()

	start := time.Now()

	req, err := readRequest(conn)
	if err != nil {
		log.Warn("failed to read request", zap.Error(err))
		_ = writeResponse(conn, response{Status: StatusInternalServerError, Payload: toFault(err)})
		return
	}

	log.Debug("dispatching request", zap.String("method", req.Method))
	resp := s.dispatch(req)
	metrics.RPCRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if resp.Status != StatusOK {
		log.Warn("request failed", zap.String("method", req.Method), zap.String("status", resp.Status.String()))
	}

	if err := writeResponse(conn, resp); err != nil {
		log.Error("failed to write response", zap.Error(err))
	}
}

func fmtPanicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return ErrProtocol
}

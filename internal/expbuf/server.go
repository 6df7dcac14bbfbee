//go:build linux

package expbuf

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	"github.com/AlexxIT/expbuf/pkg/fdpass"
	"golang.org/x/sys/unix"
)

// Header precedes the descriptors on the socket. Descriptors follow the
// order of Buffers.
type Header struct {
	Stream  string    `json:"stream,omitempty"`
	Device  string    `json:"device,omitempty"`
	Type    string    `json:"type,omitempty"`
	Flags   string    `json:"flags,omitempty"`
	Buffers []*Buffer `json:"buffers,omitempty"`
	Error   string    `json:"error,omitempty"`
}

const requestTimeout = 5 * time.Second

// Listen opens a SOCK_SEQPACKET socket at path, replacing a stale one.
func Listen(path string) (*net.UnixListener, error) {
	if fi, err := os.Stat(path); err == nil && fi.Mode()&os.ModeSocket != 0 {
		_ = os.Remove(path)
	}
	return net.ListenUnix("unixpacket", &net.UnixAddr{Name: path, Net: "unixpacket"})
}

func Serve(ln *net.UnixListener) {
	for {
		conn, err := ln.AcceptUnix()
		if err != nil {
			return
		}
		go handle(conn)
	}
}

// handle reads a stream name line and answers with its header and descriptors.
func handle(conn *net.UnixConn) {
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(requestTimeout))

	b := make([]byte, 256)
	n, err := conn.Read(b)
	if err != nil {
		log.Debug().Err(err).Msg("[expbuf] read request")
		return
	}

	name := strings.TrimSpace(string(b[:n]))

	header, files, err := response(name)
	if err != nil {
		log.Warn().Err(err).Msgf("[expbuf] dup %s", name)
		header = &Header{Stream: name, Error: err.Error()}
	}

	err = send(conn, header, files)
	closeFiles(files)

	if err != nil {
		log.Warn().Err(err).Msgf("[expbuf] send %s", name)
		return
	}

	log.Trace().Int("files", len(files)).Msgf("[expbuf] sent %s", name)
}

// response copies the stream state under mu, so a slow client never holds
// the lock. Returned files are duplicates owned by the caller.
func response(name string) (*Header, []*os.File, error) {
	mu.Lock()
	defer mu.Unlock()

	stream, ok := streams[name]
	if !ok {
		return &Header{Error: "stream not found: " + name}, nil, nil
	}
	if len(stream.Buffers) > fdpass.MaxFiles {
		return &Header{Stream: name, Error: "too many buffers"}, nil, nil
	}

	header := &Header{
		Stream:  name,
		Device:  stream.Device,
		Type:    stream.Type.String(),
		Flags:   stream.Flags.String(),
		Buffers: make([]*Buffer, len(stream.Buffers)),
	}

	files := make([]*os.File, 0, len(stream.Buffers))
	for i, buf := range stream.Buffers {
		fd, err := unix.FcntlInt(buf.File.Fd(), unix.F_DUPFD_CLOEXEC, 0)
		if err != nil {
			closeFiles(files)
			return nil, nil, err
		}
		f := os.NewFile(uintptr(fd), buf.File.Name())
		files = append(files, f)
		header.Buffers[i] = &Buffer{Index: buf.Index, Plane: buf.Plane, File: f}
	}

	return header, files, nil
}

func send(conn *net.UnixConn, header *Header, files []*os.File) error {
	b, err := json.Marshal(header)
	if err != nil {
		return err
	}
	return fdpass.Send(conn, b, files...)
}

// Fetch asks the server at path for the buffers of stream. Files follow
// the order of Header.Buffers and belong to the caller.
func Fetch(path, stream string) (*Header, []*os.File, error) {
	conn, err := net.DialUnix("unixpacket", nil, &net.UnixAddr{Name: path, Net: "unixpacket"})
	if err != nil {
		return nil, nil, err
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(requestTimeout))

	if _, err = conn.Write([]byte(stream + "\n")); err != nil {
		return nil, nil, err
	}

	b, files, err := fdpass.Recv(conn)
	if err != nil {
		return nil, nil, err
	}

	header := &Header{}
	if err = json.Unmarshal(b, header); err != nil {
		closeFiles(files)
		return nil, nil, err
	}
	if header.Error != "" {
		closeFiles(files)
		return header, nil, errors.New("expbuf: " + header.Error)
	}
	if len(files) != len(header.Buffers) {
		closeFiles(files)
		return header, nil, errors.New("expbuf: wrong files count")
	}

	for i, buf := range header.Buffers {
		buf.File = files[i]
	}

	return header, files, nil
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

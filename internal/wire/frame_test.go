package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadWriteFrameRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 127, 128, 16383, 16384}
	for _, n := range sizes {
		body := bytes.Repeat([]byte{0xAB}, n)
		var buf bytes.Buffer
		in := Frame{Tag: TagDataMessageStanza, Body: body}
		if err := WriteFrame(&buf, false, in); err != nil {
			t.Fatalf("size %d: write frame: %v", n, err)
		}
		out, err := ReadFrame(&buf, false)
		if err != nil {
			t.Fatalf("size %d: read frame: %v", n, err)
		}
		if out.Tag != in.Tag {
			t.Fatalf("size %d: tag mismatch: got=%v want=%v", n, out.Tag, in.Tag)
		}
		if !bytes.Equal(out.Body, body) {
			t.Fatalf("size %d: body mismatch", n)
		}
	}
}

func TestReadWriteFrameFirstCarriesVersion(t *testing.T) {
	var buf bytes.Buffer
	in := Frame{Tag: TagLoginRequest, Body: []byte("login")}
	if err := WriteFrame(&buf, true, in); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	out, err := ReadFrame(&buf, true)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if out.Version != ClientVersion {
		t.Fatalf("expected version %d, got %d", ClientVersion, out.Version)
	}
	if out.Tag != TagLoginRequest || string(out.Body) != "login" {
		t.Fatalf("frame mismatch: %+v", out)
	}
}

func TestReadFrameRejectsLowVersion(t *testing.T) {
	buf := bytes.NewBuffer([]byte{MinVersion - 1, byte(TagLoginRequest), 0})
	_, err := ReadFrame(buf, true)
	if !errors.Is(err, ErrBadVersion) {
		t.Fatalf("expected ErrBadVersion, got %v", err)
	}
}

func TestReadFrameUnexpectedEOF(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{byte(TagHeartbeatPing)}), false)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadFrameBodyTooLarge(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(TagDataMessageStanza))
	buf.Write(appendUvarint(nil, MaxBodyBytes+1))
	_, err := ReadFrame(&buf, false)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestReadFrameUnknownTagIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0xFE)
	buf.Write(appendUvarint(nil, 3))
	buf.Write([]byte{1, 2, 3})
	f, err := ReadFrame(&buf, false)
	if err != nil {
		t.Fatalf("unknown tag should decode, got err: %v", err)
	}
	if IsKnown(f.Tag) {
		t.Fatalf("tag 0xFE unexpectedly known")
	}
	if len(f.Body) != 3 {
		t.Fatalf("expected body to be consumed, got %d bytes", len(f.Body))
	}
}

func TestWriteFrameRejectsUnknownTag(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, false, Frame{Tag: Tag(0xFE)})
	if !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

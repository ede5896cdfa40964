// Copyright 2025 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"io"
)

// crlfWriter rewrites CRLF pairs to LF. Lone CRs pass through. A CR at the
// end of one Write is held back until the next Write or Flush shows whether
// an LF follows it.
type crlfWriter struct {
	w         io.Writer
	pendingCR bool
	last      byte // last byte written to w, 0 if none
	buf       []byte
}

func newCRLFWriter(w io.Writer) *crlfWriter {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	c.buf = c.buf[:0]
	for _, b := range p {
		if c.pendingCR {
			c.pendingCR = false
			if b != '\n' {
				c.buf = append(c.buf, '\r')
			}
		}
		if b == '\r' {
			c.pendingCR = true
			continue
		}
		c.buf = append(c.buf, b)
	}
	if err := c.emit(c.buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush writes a held-back CR, if any.
func (c *crlfWriter) Flush() error {
	if !c.pendingCR {
		return nil
	}
	c.pendingCR = false
	return c.emit([]byte{'\r'})
}

func (c *crlfWriter) emit(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := c.w.Write(b); err != nil {
		return err
	}
	c.last = b[len(b)-1]
	return nil
}

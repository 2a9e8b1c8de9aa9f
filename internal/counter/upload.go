package counter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync/atomic"
)

// ImportField is the multipart field name the API expects.
const ImportField = "orders_file"

// Import streams a CSV to the API's bulk import endpoint. size is the total
// byte count of r; onProgress, when non-nil, receives the transfer fraction
// as 0..100 as the body is consumed by the transport.
// POST /counter/orders/import
func (c *Client) Import(ctx context.Context, filename string, r io.Reader, size int64, onProgress func(int)) (*ImportResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(ImportField, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	var body io.Reader = pr
	if onProgress != nil && size > 0 {
		// Progress is measured on the multipart stream; the form framing adds
		// a couple hundred bytes, so cap at 100.
		body = &progressReader{r: pr, total: size, report: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/counter/orders/import", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out ImportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode import response: %w", err)
	}
	if onProgress != nil {
		onProgress(100)
	}
	return &out, nil
}

// progressReader reports the cumulative fraction of total read so far.
type progressReader struct {
	r      io.Reader
	total  int64
	read   atomic.Int64
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		read := p.read.Add(int64(n))
		pct := int(read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.report(pct)
	}
	return n, err
}

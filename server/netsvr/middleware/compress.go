package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 壓縮等級設定。
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// Compression 以 DefaultCompressConfig 壓縮回應（zstd 優先，其次 gzip）。
var Compression = NewCompression(DefaultCompressConfig)

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") ||
		r.Header.Get("Upgrade") != ""
}

// 204 No Content, 304 Not Modified, 1xx
func isNoBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

// encoder 把 gzip.Writer / zstd.Encoder 收斂成同一組操作。
type encoder interface {
	io.Writer
	Reset(w io.Writer)
	Close() error
}

type compressor struct {
	cfg  CompressConfig
	gzip sync.Pool
	zstd sync.Pool
}

func (c *compressor) get(name string, w io.Writer) encoder {
	pool := &c.gzip
	if name == "zstd" {
		pool = &c.zstd
	}
	if v := pool.Get(); v != nil {
		e := v.(encoder)
		e.Reset(w)
		return e
	}
	if name == "zstd" {
		zw, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(c.cfg.ZstdLevel),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	}
	gw, err := gzip.NewWriterLevel(w, c.cfg.GzipLevel)
	if err != nil {
		gw = gzip.NewWriter(w)
	}
	return gw
}

func (c *compressor) put(name string, e encoder) {
	_ = e.Close()
	if name == "zstd" {
		c.zstd.Put(e)
		return
	}
	c.gzip.Put(e)
}

// --- ResponseWriter Wrapper ---

type compressResponseWriter struct {
	http.ResponseWriter
	w        io.Writer
	disabled bool // 204/304 時動態取消壓縮
}

func (cw *compressResponseWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.w.Write(b)
}

func (cw *compressResponseWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if isNoBodyStatus(code) {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressResponseWriter) Flush() {
	if !cw.disabled {
		if f, ok := cw.w.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// pickEncoding 依 Accept-Encoding 選擇 zstd 或 gzip；都不支援回傳空字串。
func pickEncoding(accept string) string {
	switch {
	case strings.Contains(accept, "zstd"):
		return "zstd"
	case strings.Contains(accept, "gzip"):
		return "gzip"
	default:
		return ""
	}
}

// NewCompression 建立使用指定等級的壓縮 middleware。
func NewCompression(cfg CompressConfig) func(http.Handler) http.Handler {
	c := &compressor{cfg: cfg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || isWebSocketUpgrade(r) || w.Header().Get("Content-Encoding") != "" {
				next.ServeHTTP(w, r)
				return
			}
			name := pickEncoding(r.Header.Get("Accept-Encoding"))
			if name == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Encoding", name)
			w.Header().Add("Vary", "Accept-Encoding")

			enc := c.get(name, w)
			cw := &compressResponseWriter{ResponseWriter: w, w: enc}
			defer func() {
				// 已取消壓縮時，footer 導向 io.Discard，避免污染 204/304
				if cw.disabled {
					enc.Reset(io.Discard)
				}
				c.put(name, enc)
			}()
			next.ServeHTTP(cw, r)
		})
	}
}

package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober 读取本地视频时长（秒）
type Prober interface {
	Duration(ctx context.Context, localPath string) (float64, error)
}

type FFProbe struct{}

var _ Prober = FFProbe{}

func (FFProbe) Duration(ctx context.Context, localPath string) (float64, error) {
	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		out, err := ffmpeg.Probe(localPath)
		ch <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return 0, errors.WithMessage(r.err, "ffprobe")
		}
		return ParseDuration(r.out)
	}
}

// ParseDuration 从 ffprobe 的 JSON 输出中取 format.duration
func ParseDuration(probe string) (float64, error) {
	d := gjson.Get(probe, "format.duration")
	if !d.Exists() {
		return 0, errors.New("ffprobe: duration not found")
	}
	return d.Float(), nil
}

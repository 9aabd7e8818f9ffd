package port

import "context"

// ImageGenerator 根据提示词生成一张图片，返回图片 URL
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

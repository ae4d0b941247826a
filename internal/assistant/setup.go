package assistant

import (
	"github.com/SlpAus/minigame-portal-backend/internal/platform/ai"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// SetupModule 组装问答模块并返回其处理器
func SetupModule(completer ai.Completer, bucket *gridfs.Bucket) *Handler {
	return NewHandler(NewService(completer, NewAudioStore(bucket)))
}

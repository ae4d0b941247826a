package assistant

import (
	"bytes"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// gridfsAudioStore 把上传的音频原样存进GridFS桶
type gridfsAudioStore struct {
	bucket *gridfs.Bucket
}

// NewAudioStore 创建基于GridFS的音频归档
func NewAudioStore(bucket *gridfs.Bucket) AudioStore {
	return &gridfsAudioStore{bucket: bucket}
}

func (s *gridfsAudioStore) Save(_ context.Context, name string, data []byte) error {
	if _, err := s.bucket.UploadFromStream(name, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("写入GridFS失败: %w", err)
	}
	return nil
}

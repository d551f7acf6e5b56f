package kafka

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

// Close harus membuat loop exit dan WaitClosed kembali, tanpa perlu
// context di-cancel. Inbox kosong, jadi tidak ada koneksi broker.
func TestProducerCloseUnblocksWaitClosed(t *testing.T) {
	p := NewProducer([]string{"localhost:0"}, "order.lifecycle", 8, zap.NewNop())
	p.Start(context.Background())
	p.Close()

	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer tidak selesai setelah Close")
	}
}

// Publish di tengah drain tidak boleh panic: loop masih hidup sampai
// Close() dipanggil walau context induk sudah selesai duluan.
func TestProducerPublishAfterParentContextCancel(t *testing.T) {
	p := NewProducer([]string{"localhost:0"}, "order.lifecycle", 8, zap.NewNop())
	p.Start(context.Background())

	parent, cancel := context.WithCancel(context.Background())
	cancel()
	<-parent.Done()

	p.Publish([]byte("k"), []byte("v")) // masuk buffer, belum ditulis
	p.Close()
}

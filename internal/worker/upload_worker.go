package worker // import "github.com/Risriddle/Librarize/internal/worker"

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/Risriddle/Librarize/internal/config"
	"github.com/Risriddle/Librarize/internal/log"
	"github.com/Risriddle/Librarize/internal/model"
	"github.com/Risriddle/Librarize/internal/storage"
	"github.com/Risriddle/Librarize/internal/store"
)

const pdfContentType = "application/pdf"

type UploadPool struct {
	queue chan model.Job
}

// NewUploadPool creates a pool of background upload workers.
func NewUploadPool(store *store.Store, blobs storage.BlobStore, size int) *UploadPool {
	pool := &UploadPool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &UploadWorker{id: i, store: store, blobs: blobs}
		go worker.Run(pool.queue)
	}

	return pool
}

// Implement WorkPool interface
func (p *UploadPool) Push(job model.Job) {
	p.queue <- job
}

type UploadWorker struct {
	id    int
	store *store.Store
	blobs storage.BlobStore
}

// Run handles book uploads. Each job carries a multipart file header; the
// worker stores the blob, resolves a unique title and inserts the book row.
func (w *UploadWorker) Run(c <-chan model.Job) {
	log.Debug("UploadWorker is running", zap.Int("worker_id", w.id))

	for {
		job := <-c

		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("job_id", job.ID),
			zap.String("file_name", job.FileName))

		if err := w.store.SetJobStatus(job.ID, model.JobStatusRunning, ""); err != nil {
			log.Error("Error updating job status", zap.Error(err))
		}

		book, err := w.process(job)
		if err != nil {
			log.Error("Upload failed",
				zap.Int("job_id", job.ID),
				zap.String("file_name", job.FileName),
				zap.Error(err))
			if err := w.store.SetJobStatus(job.ID, model.JobStatusFailed, err.Error()); err != nil {
				log.Error("Error updating job status", zap.Error(err))
			}
			continue
		}

		if err := w.store.SetJobStatus(job.ID, model.JobStatusDone, ""); err != nil {
			log.Error("Error updating job status", zap.Error(err))
		}

		log.Info("Book uploaded",
			zap.Int("worker_id", w.id),
			zap.Int("job_id", job.ID),
			zap.String("book_id", book.ID),
			zap.String("title", book.Title))
	}
}

func (w *UploadWorker) process(job model.Job) (*model.Book, error) {
	fileHeader, ok := job.Item.(*multipart.FileHeader)
	if !ok {
		return nil, fmt.Errorf("job %d carries no file", job.ID)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// DetectContentType needs at most the first 512 bytes.
	buff := make([]byte, 512)
	n, err := file.Read(buff)
	if err != nil && err != io.EOF {
		return nil, err
	}

	fileType := http.DetectContentType(buff[:n])
	if fileType != pdfContentType {
		return nil, fmt.Errorf("unsupported file type %q, only PDF is accepted", fileType)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := storage.NewKey("pdfs", fileHeader.Filename)
	if _, err := w.blobs.Put(key, file, pdfContentType); err != nil {
		return nil, err
	}

	title := job.Title
	if title == "" {
		title = fileHeader.Filename
	}
	title, err = w.store.ResolveUniqueTitle(title)
	if err != nil {
		w.discardBlob(key)
		return nil, err
	}

	book := &model.Book{
		FileName: fileHeader.Filename,
		FileKey:  key,
		Title:    title,
		Author:   job.Author,
		CoverURL: coverURL(key),
	}

	added, err := w.store.AddBook(book)
	if err != nil {
		w.discardBlob(key)
		return nil, err
	}
	return added, nil
}

func (w *UploadWorker) discardBlob(key string) {
	if err := w.blobs.Delete(key); err != nil {
		log.Warn("Orphaned blob left behind", zap.String("key", key), zap.Error(err))
	}
}

// coverURL derives a cover image URL by pointing the image proxy at the
// first page of the stored PDF. Empty proxy base disables covers.
func coverURL(fileKey string) string {
	base := config.Opts.CoverProxyBase
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s?page=1&fm=jpg&w=600&h=800&fit=crop", base, url.PathEscape(fileKey))
}

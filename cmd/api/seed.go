package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/gormdb"
)

var flagSeedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入演示图书数据",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&flagSeedForce, "force", false, "表中已有数据时仍然写入")
}

// demoBooks 演示数据
var demoBooks = []book.Draft{
	{Title: "A Brief History of Time", Author: "Stephen Hawking", Genre: "Non Fiction", Year: "1988"},
	{Title: "Armada", Author: "Ernest Cline", Genre: "Science Fiction", Year: "2015"},
	{Title: "Emma", Author: "Jane Austen", Genre: "Classic", Year: "1815"},
	{Title: "Frankenstein", Author: "Mary Shelley", Genre: "Horror", Year: "1818"},
	{Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Genre: "Fantasy", Year: "1997"},
	{Title: "Harry Potter and the Chamber of Secrets", Author: "J.K. Rowling", Genre: "Fantasy", Year: "1998"},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", Year: "1813"},
	{Title: "Ready Player One", Author: "Ernest Cline", Genre: "Science Fiction", Year: "2011"},
	{Title: "The Hunger Games", Author: "Suzanne Collins", Genre: "Fantasy", Year: "2008"},
	{Title: "The Martian", Author: "Andy Weir", Genre: "Science Fiction", Year: "2014"},
	{Title: "The Universe in a Nutshell", Author: "Stephen Hawking", Genre: "Non Fiction", Year: "2001"},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	db, cleanup, err := gormdb.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	svc := book.NewService(gormdb.NewBookRepository(db))

	_, total, err := svc.SearchBooks(ctx, book.SearchParams{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 && !flagSeedForce {
		log.Info("表中已有数据,跳过(使用--force强制写入)", zap.Int64("total", total))
		return nil
	}

	for _, d := range demoBooks {
		result, err := svc.CreateBook(ctx, d)
		if err != nil {
			return err
		}
		if !result.Valid() {
			log.Warn("演示数据校验失败", zap.String("title", d.Title), zap.Strings("errors", result.FieldErrors.Messages()))
			continue
		}
		log.Debug("写入图书", zap.Uint("id", result.Book.ID), zap.String("title", result.Book.Title))
	}

	log.Info("演示数据写入完成", zap.Int("count", len(demoBooks)))
	return nil
}

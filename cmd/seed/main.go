package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/pkg/config"
	"github.com/bookverse/bookverse-backend/pkg/db"
	"github.com/bookverse/bookverse-backend/pkg/db/models"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

var sampleBooks = []models.Book{
	{
		Title:         "Dom Casmurro",
		Author:        "Machado de Assis",
		Description:   "Um dos maiores clássicos da literatura brasileira, que narra a história de Bentinho e sua obsessão por Capitu.",
		PriceCents:    2500,
		CoverImageURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop",
		Genre:         "Clássico",
		Stock:         10,
	},
	{
		Title:         "O Alquimista",
		Author:        "Paulo Coelho",
		Description:   "A jornada de Santiago em busca de seu tesouro pessoal e da realização de seus sonhos.",
		PriceCents:    3000,
		CoverImageURL: "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=600&fit=crop",
		Genre:         "Ficção",
		Stock:         15,
	},
	{
		Title:         "1984",
		Author:        "George Orwell",
		Description:   "Uma distopia sobre controle totalitário e vigilância em uma sociedade futurista.",
		PriceCents:    2800,
		CoverImageURL: "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop",
		Genre:         "Distopia",
		Stock:         8,
	},
	{
		Title:         "O Senhor dos Anéis",
		Author:        "J.R.R. Tolkien",
		Description:   "A épica jornada de Frodo para destruir o Um Anel e salvar a Terra Média.",
		PriceCents:    4500,
		CoverImageURL: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=600&fit=crop",
		Genre:         "Fantasia",
		Stock:         12,
	},
	{
		Title:         "Cem Anos de Solidão",
		Author:        "Gabriel García Márquez",
		Description:   "A saga da família Buendía na cidade fictícia de Macondo, uma obra-prima do realismo mágico.",
		PriceCents:    3500,
		CoverImageURL: "https://images.unsplash.com/photo-1506880018603-83d5b814b5a6?w=400&h=600&fit=crop",
		Genre:         "Realismo Mágico",
		Stock:         6,
	},
	{
		Title:         "O Pequeno Príncipe",
		Author:        "Antoine de Saint-Exupéry",
		Description:   "Uma fábula poética sobre amizade, amor e crítica à sociedade adulta.",
		PriceCents:    2200,
		CoverImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=600&fit=crop",
		Genre:         "Fábula",
		Stock:         20,
	},
	{
		Title:         "Crime e Castigo",
		Author:        "Fiódor Dostoiévski",
		Description:   "A história psicológica de Raskólnikov e suas consequências após cometer um assassinato.",
		PriceCents:    3200,
		CoverImageURL: "https://images.unsplash.com/photo-1519904981063-b0cf448d479e?w=400&h=600&fit=crop",
		Genre:         "Clássico",
		Stock:         9,
	},
	{
		Title:         "Harry Potter e a Pedra Filosofal",
		Author:        "J.K. Rowling",
		Description:   "O início da jornada mágica de Harry Potter no mundo dos bruxos.",
		PriceCents:    2900,
		CoverImageURL: "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=600&fit=crop",
		Genre:         "Fantasia",
		Stock:         25,
	},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	var seeded int
	for _, book := range sampleBooks {
		var existing models.Book
		err := dbClient.DB().WithContext(ctx).
			Where("title = ? AND author = ?", book.Title, book.Author).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logg.Error(ctx, "failed to check existing book", err)
			os.Exit(1)
		}
		if err := dbClient.DB().WithContext(ctx).Create(&book).Error; err != nil {
			// A concurrent seed run may have won the insert.
			if db.IsUniqueViolation(err, "idx_books_title_author") {
				continue
			}
			logg.Error(ctx, fmt.Sprintf("failed to seed %q", book.Title), err)
			os.Exit(1)
		}
		seeded++
		logg.Info(logg.WithField(ctx, "title", book.Title), "book seeded")
	}

	logg.Info(logg.WithField(ctx, "seeded", seeded), "seed complete")
}

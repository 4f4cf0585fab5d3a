package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivlev/pdfoutline/internal/analyzer"
	"github.com/ivlev/pdfoutline/internal/config"
	"github.com/ivlev/pdfoutline/internal/engine"
	"github.com/ivlev/pdfoutline/internal/logging"
	"github.com/ivlev/pdfoutline/internal/outline"
	"github.com/ivlev/pdfoutline/internal/store"
	"github.com/ivlev/pdfoutline/internal/system"
	"github.com/ivlev/pdfoutline/internal/writer"
)

// buildVersion is set with -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/pdf", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к PDF или папке с PDF (по умолчанию: самый свежий файл в input/pdf/)")
	recursivePtr := flag.Bool("recursive", false, "Искать PDF во вложенных папках")
	outputPtr := flag.String("output", "output", "Папка для результатов")
	formatPtr := flag.String("format", "json", "Формат результата: json, yaml")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки")
	backendPtr := flag.String("backend", "fitz", "Парсер PDF: fitz (MuPDF), native (чистый Go)")
	taggerPtr := flag.String("tagger", "prose", "Морфологический разметчик: prose, none")
	configPtr := flag.String("config", "", "YAML с настройками детектора (ключевые слова, пороги, письменности)")
	cachePtr := flag.String("cache", "", "Путь к SQLite-кэшу результатов (пусто - без кэша)")
	prunePtr := flag.Bool("prune-cache", false, "Удалить из кэша результаты других настроек детектора")
	forcePtr := flag.Bool("force", false, "Обработать заново, даже если результат актуален")
	xlsxPtr := flag.Bool("xlsx", false, "Сохранить сводную таблицу XLSX в папку результатов")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	stampPtr := flag.Bool("stamp", false, "Добавить processed_at в результат")
	verbosePtr := flag.Bool("v", false, "Подробный лог")
	dumpConfigPtr := flag.Bool("dump-config", false, "Вывести настройки детектора в YAML и выйти")

	flag.Parse()

	logging.SetLogger(logging.NewTextLogger(os.Stderr, *verbosePtr))

	detCfg, err := config.LoadDetectorConfig(*configPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка настроек детектора: %v", err)
	}

	if *dumpConfigPtr {
		if err := config.WriteDetectorConfig(os.Stdout, detCfg); err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		return
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestPDF("input/pdf")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите PDF в input/pdf/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", inputPath)
	}

	cfg := &config.Config{
		InputPath:    inputPath,
		Recursive:    *recursivePtr,
		OutputDir:    *outputPtr,
		Format:       *formatPtr,
		Workers:      *workersPtr,
		Backend:      *backendPtr,
		Tagger:       *taggerPtr,
		DetectorPath: *configPtr,
		CachePath:    *cachePtr,
		Force:        *forcePtr,
		Stamp:        *stampPtr,
		ShowStats:    *statsPtr,
		BuildVersion: buildVersion,
	}
	if *xlsxPtr {
		cfg.Workbook = writer.GenerateWorkbookPath(cfg.OutputDir)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	tagger, err := analyzer.NewTagger(cfg.Tagger)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	// Инициализируем зависимости
	fingerprint := config.Fingerprint(detCfg, cfg.Tagger, cfg.Backend)
	project := engine.NewOutlineProject(cfg, outline.NewDetector(detCfg, tagger), nil, fingerprint)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.CachePath != "" {
		cache, err := store.Open(cfg.CachePath)
		if err != nil {
			log.Fatalf("[-] Ошибка открытия кэша: %v", err)
		}
		defer cache.Close()

		if *prunePtr {
			removed, err := cache.Prune(ctx, fingerprint)
			if err != nil {
				log.Printf("[!] Не удалось очистить кэш: %v", err)
			} else if removed > 0 {
				fmt.Printf("[*] Удалено устаревших записей кэша: %d\n", removed)
			}
		}
		if n, err := cache.Count(ctx); err == nil {
			fmt.Printf("[*] Кэш: %s (записей: %d)\n", cfg.CachePath, n)
		}
		project.Cache = cache
	}

	report, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}
	if report.Failed > 0 {
		fmt.Printf("[!] Документов с ошибками: %d\n", report.Failed)
	}

	fmt.Printf("[+++] Успех! Результаты: %s\n", cfg.OutputDir)
}

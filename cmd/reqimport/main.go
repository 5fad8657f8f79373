// reqimport 批量导入工具。
// 独立于服务进程运行，由运维手动触发，直接写数据库。
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/peihe07/R1L-RTM-V3/internal/config"
	"github.com/peihe07/R1L-RTM-V3/internal/trace/importer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rootCmd = &cobra.Command{
	Use:   "reqimport",
	Short: "Import requirement spreadsheets into the trace database",
	Long: `reqimport loads CFTS requirements, SYS.2 requirements and test cases
from Excel exports into the requirement trace database.

Each row is committed on its own: a failing row is recorded in the run
report and the rest of the run continues. The report is written next to
the working directory as <entity>_import_report_<timestamp>.json.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cftsCmd)
	rootCmd.AddCommand(sys2Cmd)
	rootCmd.AddCommand(testcaseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup 初始化配置、日志和数据库连接，三个子命令共用
func setup() (*config.Config, *zap.Logger, *gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Log.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	return cfg, zapLogger, db, nil
}

// finishReport 打印摘要、落盘报告，配置了 MinIO 时再归档一份
func finishReport(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger, report *importer.Report, prefix string) error {
	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Printf("%s IMPORT SUMMARY\n", prefix)
	fmt.Println("================================================================================")
	if report.TotalFiles > 0 {
		fmt.Printf("Total files processed: %d\n", report.TotalFiles)
		fmt.Printf("Successful: %d\n", len(report.SuccessFiles))
		fmt.Printf("Failed: %d\n", len(report.FailedFiles))
	}
	fmt.Printf("Total records read: %d\n", report.TotalRecords)
	fmt.Printf("Valid records: %d\n", report.ValidRecords)
	fmt.Printf("Successfully inserted: %d\n", report.InsertedRecords)
	fmt.Printf("Skipped (duplicates/updates): %d\n", report.SkippedRecords)
	if len(report.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range report.Errors {
			if e.File != "" {
				fmt.Printf("  - %s %s: %s\n", e.File, e.Key, e.Error)
			} else {
				fmt.Printf("  - %s: %s\n", e.Key, e.Error)
			}
		}
	}
	fmt.Println("================================================================================")

	path, err := report.Save(".", prefix)
	if err != nil {
		return err
	}
	fmt.Printf("\nDetailed report saved to: %s\n", path)

	if cfg.MinIO.Endpoint != "" {
		if err := uploadReport(ctx, cfg.MinIO, path); err != nil {
			// 归档失败不让导入算失败
			zapLogger.Warn("Failed to archive report to minio", zap.Error(err))
		} else {
			zapLogger.Info("Report archived to minio",
				zap.String("bucket", cfg.MinIO.Bucket), zap.String("object", path))
		}
	}
	return nil
}

// uploadReport 把报告文件归档到 MinIO
func uploadReport(ctx context.Context, cfg config.MinIOConfig, path string) error {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}

	_, err = client.FPutObject(ctx, cfg.Bucket, "import-reports/"+path, path, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload report: %w", err)
	}
	return nil
}

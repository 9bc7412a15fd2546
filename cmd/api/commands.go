package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	userapp "github.com/xiebiao/geektext/internal/application/user"
	"github.com/xiebiao/geektext/internal/infrastructure/config"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/pkg/logger"
	"github.com/xiebiao/geektext/pkg/metrics"
	"github.com/xiebiao/geektext/pkg/tracing"
	"github.com/xiebiao/geektext/pkg/validator"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "geektext",
		Short:         "GeekText 图书目录服务",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径（默认config/config.yaml）")

	load := func() (*config.Config, func(), error) {
		var (
			cfg *config.Config
			err error
		)
		if configFile != "" {
			cfg, err = config.LoadFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return nil, nil, err
		}

		flush, err := logger.Init(logger.Options{
			Level:        cfg.Log.Level,
			Format:       cfg.Log.Format,
			Output:       cfg.Log.Output,
			EnableCaller: cfg.Log.EnableCaller,
		})
		if err != nil {
			return nil, nil, err
		}
		return cfg, flush, nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "启动HTTP服务",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, flush, err := load()
				if err != nil {
					return err
				}
				defer flush()
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "执行数据库迁移后退出",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, flush, err := load()
				if err != nil {
					return err
				}
				defer flush()

				db, err := gormdb.NewDB(cfg)
				if err != nil {
					return err
				}
				if err := gormdb.Migrate(db); err != nil {
					return err
				}
				zap.L().Info("数据库迁移完成")
				return nil
			},
		},
		newAdminCmd(load),
	)
	return root
}

// newAdminCmd 授予（--revoke收回）管理员权限
func newAdminCmd(load func() (*config.Config, func(), error)) *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "admin <username>",
		Short: "授予或收回管理员权限",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush, err := load()
			if err != nil {
				return err
			}
			defer flush()

			db, err := gormdb.NewDB(cfg)
			if err != nil {
				return err
			}
			uc := userapp.NewAdminUseCase(gormdb.NewUserRepository(db))
			u, err := uc.Execute(cmd.Context(), args[0], !revoke)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is_admin=%t\n", u.Username, u.IsAdmin)
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "收回管理员权限")
	return cmd
}

// serve 启动服务，收到SIGINT/SIGTERM后优雅退出
func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.InitMetrics()

	if err := registerBindingRules(); err != nil {
		return err
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				zap.L().Warn("关闭Tracer失败", zap.Error(err))
			}
		}()
	}

	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("正在关闭服务")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// registerBindingRules gin的binding引擎与validator包共用自定义规则
func registerBindingRules() error {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		if err := validator.RegisterCustom(v); err != nil {
			return fmt.Errorf("注册校验规则失败: %w", err)
		}
	}
	return nil
}

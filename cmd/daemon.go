package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Pratik-jagdale/AgentDashBackend/src/api/router"
	"github.com/Pratik-jagdale/AgentDashBackend/src/app"
	"github.com/Pratik-jagdale/AgentDashBackend/src/config"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
)

var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "serve the agent dashboard api.",
	Long:  "serve the agent dashboard api.",
	Run: func(cmd *cobra.Command, args []string) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		ctx := context.Background()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		onSrvExit := make(chan error, 1)

		go func() {
			defer wg.Done()

			cfg, err := config.UnmarshalCmdConfig()
			if err != nil {
				xzap.WithContext(ctx).Error("failed on unmarshal config", zap.Error(err))
				onSrvExit <- err
				return
			}

			_, err = xzap.SetUp(cfg.Log)
			if err != nil {
				xzap.WithContext(ctx).Error("failed on set up logger", zap.Error(err))
				onSrvExit <- err
				return
			}

			xzap.WithContext(ctx).Info("agentdash server start", zap.Any("config", cfg))

			serverCtx, err := svc.NewServiceContext(ctx, cfg)
			if err != nil {
				xzap.WithContext(ctx).Error("failed on create service context", zap.Error(err))
				onSrvExit <- err
				return
			}

			// Rehydrate a previously connected wallet session before the
			// API starts taking requests, so clients never observe a
			// flickering unauthenticated state.
			if err := serverCtx.Session.Rehydrate(ctx); err != nil {
				xzap.WithContext(ctx).Error("failed on rehydrate wallet session", zap.Error(err))
				onSrvExit <- err
				return
			}

			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(cfg, r, serverCtx)
			if err != nil {
				xzap.WithContext(ctx).Error("failed on create platform", zap.Error(err))
				onSrvExit <- err
				return
			}

			if cfg.Monitor.PprofEnable {
				go http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort), nil)
			}

			if err := platform.Start(); err != nil {
				onSrvExit <- err
			}
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			switch sig {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM:
				cancel()
				xzap.WithContext(ctx).Info("exit by signal", zap.String("signal", sig.String()))
			}
		case err := <-onSrvExit:
			cancel()
			xzap.WithContext(ctx).Error("exit by error", zap.Error(err))
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(DaemonCmd)
}

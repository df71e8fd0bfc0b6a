package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/clarusmens/clarus-mens/internal/config"
	"github.com/clarusmens/clarus-mens/internal/pkg/version"
	"github.com/spf13/cobra"
)

// rootOptions 모든 하위 명령이 공유하는 플래그 값입니다.
type rootOptions struct {
	configFile  string
	environment string
}

// newRootCommand 애플리케이션의 루트 명령을 생성합니다. 하위 명령 없이 실행하면 serve와 동일하게 동작합니다.
func newRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Clarus Mens question answering API server",
		Long:  "Clarus Mens API 서버를 실행하거나 빌드 정보를 출력합니다.",

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, out)
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", config.DefaultFilename, "기본 설정 파일 경로")
	cmd.PersistentFlags().StringVarP(&opts.environment, "environment", "e", "", "실행 환경 이름 (예: Production, Staging, Development)")

	cmd.AddCommand(newServeCommand(opts, out))
	cmd.AddCommand(newVersionCommand(opts, out))

	return cmd
}

func newServeCommand(opts *rootOptions, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "HTTP API 서버를 실행합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, out)
		},
	}
}

func newVersionCommand(opts *rootOptions, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "표시용 버전과 빌드 정보를 출력합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := version.Load(version.StaticEnvironment(versionEnvironment(opts.environment)))
			printVersion(out, state)
			return nil
		},
	}
}

// runServe SIGINT/SIGTERM을 받으면 취소되는 context로 서버를 실행합니다.
func runServe(cmd *cobra.Command, opts *rootOptions, out io.Writer) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, config.LoadOptions{
		Filename:    opts.configFile,
		Environment: strings.TrimSpace(opts.environment),
	}, out)
}

// versionEnvironment version 명령은 설정 파일 없이도 동작해야 하므로 플래그, 환경 변수, 기본값 순으로 실행 환경을 결정합니다.
func versionEnvironment(flag string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(config.EnvPrefix + "ENVIRONMENT")); v != "" {
		return v
	}
	return version.Production
}

func printVersion(out io.Writer, state *version.State) {
	info := state.Info()

	fmt.Fprintf(out, "Clarus Mens %s\n", state.DisplayVersion())
	fmt.Fprintf(out, "  SemVer:           %s\n", state.SemVer())
	fmt.Fprintf(out, "  Assembly Version: %s\n", state.AssemblyVersion())
	fmt.Fprintf(out, "  Environment:      %s\n", state.Environment().Name())
	fmt.Fprintf(out, "  Commit:           %s\n", info.Commit)
	fmt.Fprintf(out, "  Build Date:       %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go Version:       %s (%s/%s)\n", info.GoVersion, info.OS, info.Arch)
}

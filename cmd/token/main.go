package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/meta-health-agent/internal/config"
	"github.com/vfg2006/meta-health-agent/internal/usecases/authenticating"
)

// Emite um token de acesso à API assinado com AUTH_SECRET.
// Sem --account o token acessa todas as contas e pode acionar as rotinas de cron.
func main() {
	subject := pflag.String("subject", "operator", "token subject")
	accounts := pflag.StringSlice("account", nil, "ad account id the token may query (repeatable)")
	ttl := pflag.Duration("ttl", 24*time.Hour, "token lifetime")
	pflag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	authService, err := authenticating.NewService(cfg.Auth)
	if err != nil {
		logrus.Fatal(err)
	}

	token, err := authService.IssueToken(*subject, *accounts, *ttl)
	if err != nil {
		logrus.Fatal(err)
	}

	fmt.Fprintln(os.Stdout, token)
}

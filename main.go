package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/igor04091968/tun-status/app"
	"github.com/igor04091968/tun-status/cmd"
	"github.com/igor04091968/tun-status/config"

	flag "github.com/spf13/pflag"
)

func runApp() {
	a := app.NewApp()
	if err := a.Init(); err != nil {
		fmt.Println("init failed:", err)
		os.Exit(1)
	}
	if err := a.Start(); err != nil {
		fmt.Println("start failed:", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	a.Stop()
}

func runAdmin(args []string) {
	adminFlags := flag.NewFlagSet("admin", flag.ExitOnError)
	reset := adminFlags.Bool("reset", false, "reset admin credentials to admin/admin")
	show := adminFlags.Bool("show", false, "show current admin credentials")
	username := adminFlags.String("username", "", "set admin username")
	password := adminFlags.String("password", "", "set admin password")
	_ = adminFlags.Parse(args)

	switch {
	case *reset:
		cmd.ResetAdmin()
	case *show:
		cmd.ShowAdmin()
	case *username != "" || *password != "":
		cmd.UpdateAdmin(*username, *password)
	default:
		adminFlags.Usage()
	}
}

func main() {
	showVersion := flag.BoolP("version", "v", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", config.GetName(), config.GetVersion())
		return
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "admin" {
		runAdmin(args[1:])
		return
	}

	runApp()
}

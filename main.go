package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"userhub/config"
	"userhub/database"
	"userhub/logger"
	"userhub/web"
	"userhub/web/service"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		logger.Warning("stop server err:", err)
	}
}

func showSetting() {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user info failed, error info:", err)
		return
	}
	fmt.Println("current panel settings as follows:")
	fmt.Println("username:", user.Username)
	fmt.Println("role:", user.Role)
	fmt.Println("port:", config.GetPort())
}

func updateSetting(username, password string) {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user info failed, error info:", err)
		return
	}
	if err := userService.UpdateCredentials(user.Id, username, password); err != nil {
		fmt.Println("update credentials failed:", err)
		return
	}
	fmt.Println("update credentials success")
}

func seedUsers(file string) {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	seedService := service.SeedService{}
	created, err := seedService.SeedFromFile(file)
	if err != nil {
		fmt.Println("seed failed:", err)
		return
	}
	fmt.Printf("seed complete, %d user(s) created\n", created)
}

func main() {
	var envFile string
	var settingShow bool
	var settingUsername string
	var settingPassword string
	var seedFile string

	rootCmd := &cobra.Command{
		Use:   "userhub",
		Short: "Session-based authentication and user management service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file")

	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Show or update bootstrap admin settings",
		Run: func(cmd *cobra.Command, args []string) {
			if settingUsername != "" || settingPassword != "" {
				updateSetting(settingUsername, settingPassword)
				return
			}
			if settingShow {
				showSetting()
				return
			}
			_ = cmd.Help()
		},
	}
	settingCmd.Flags().BoolVar(&settingShow, "show", false, "show current settings")
	settingCmd.Flags().StringVar(&settingUsername, "username", "", "new admin username")
	settingCmd.Flags().StringVar(&settingPassword, "password", "", "new admin password")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create users from a TOML fixture file",
		Run: func(cmd *cobra.Command, args []string) {
			if seedFile == "" {
				_ = cmd.Help()
				return
			}
			seedUsers(seedFile)
		},
	}
	seedCmd.Flags().StringVar(&seedFile, "file", "", "path to TOML fixture")

	rootCmd.AddCommand(settingCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

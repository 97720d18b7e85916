package cmd

import (
	"fmt"

	"github.com/igor04091968/tun-status/config"
	"github.com/igor04091968/tun-status/database"
	"github.com/igor04091968/tun-status/service"
)

func ResetAdmin() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	err = userService.UpdateFirstUser("admin", "admin")
	if err != nil {
		fmt.Println("reset admin credentials failed:", err)
	} else {
		fmt.Println("reset admin credentials success")
	}
}

func UpdateAdmin(username string, password string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	if username != "" || password != "" {
		userService := service.UserService{}
		err := userService.UpdateFirstUser(username, password)
		if err != nil {
			fmt.Println("update admin credentials failed:", err)
		} else {
			fmt.Println("update admin credentials success")
		}
	}
}

func ShowAdmin() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}
	userService := service.UserService{}
	userModel, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user info failed:", err)
		return
	}
	if userModel.Username == "" || userModel.Password == "" {
		fmt.Println("current username or password is empty")
	}
	fmt.Println("First admin credentials:")
	fmt.Println("\tUsername:\t", userModel.Username)
	fmt.Println("\tPassword:\t", userModel.Password)
}

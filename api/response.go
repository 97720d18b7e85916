package api

import (
	"net/http"

	"github.com/igor04091968/tun-status/logger"

	"github.com/gin-gonic/gin"
)

type msgResponse struct {
	Success bool        `json:"success"`
	Msg     string      `json:"msg"`
	Obj     interface{} `json:"obj,omitempty"`
}

func jsonMsg(c *gin.Context, msg string, err error) {
	if err == nil {
		c.JSON(http.StatusOK, msgResponse{Success: true, Msg: msg})
		return
	}
	logger.Warning(msg, " failed: ", err)
	c.JSON(http.StatusOK, msgResponse{Success: false, Msg: msg + ": " + err.Error()})
}

func jsonObj(c *gin.Context, obj interface{}, err error) {
	if err != nil {
		jsonMsg(c, "get data", err)
		return
	}
	c.JSON(http.StatusOK, msgResponse{Success: true, Obj: obj})
}

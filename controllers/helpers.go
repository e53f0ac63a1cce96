package controllers

import (
	"net/http"
	"os"
	"strconv"

	"streampass/config"

	"github.com/gin-gonic/gin"
)

var conf config.Configuration

// SetConfigurations injeta a configuração carregada no main. Variáveis de
// ambiente continuam tendo precedência sobre o arquivo.
func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

func confInt(fromFile, def int) int {
	if fromFile > 0 {
		return fromFile
	}
	return def
}

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" é obrigatório", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Pagination devolve (offset, limit) a partir de ?page=&limit=.
// page começa em 1; limit default 50, teto 200.
func Pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return (page - 1) * limit, limit
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

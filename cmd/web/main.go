// @title           Appointly API
// @version         1.0
// @description     Бэкенд записи на услуги: категории, профиль, вход и сброс пароля.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "appointly/internal/app"

func main() {
	app.Run()
}

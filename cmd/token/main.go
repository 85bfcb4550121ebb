// token emite un JWT firmado con JWT_SECRET para probar la API en local.
//
// Uso: go run ./cmd/token -user u-1 -role admin -lang en
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/uniforms-api/pkg/config"
	"github.com/jhoicas/uniforms-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "dev", "user_id del token")
	role := flag.String("role", "admin", "admin | staff")
	lang := flag.String("lang", "", "login_language (en, zh-TW, cn...)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, *lang, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

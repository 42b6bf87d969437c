// token emite un JWT de desarrollo firmado con JWT_SECRET.
//
// Uso: go run ./cmd/token [rol] [user_id]
// rol: admin | omborchi | viewer (por defecto omborchi).
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Jamxon/Korxona/pkg/config"
	"github.com/Jamxon/Korxona/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}

	role := jwt.RoleOmborchi
	if len(os.Args) > 1 {
		role = os.Args[1]
	}
	switch role {
	case jwt.RoleAdmin, jwt.RoleOmborchi, jwt.RoleViewer:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido %q\n", role)
		os.Exit(2)
	}
	userID := uuid.NewString()
	if len(os.Args) > 2 {
		userID = os.Args[2]
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

// seed_admin crea la primera cuenta de administrador, o promueve a admin la
// cuenta existente con el mismo email.
//
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... ADMIN_PHONE=... go run ./cmd/seed_admin
// Requiere STORE_DRIVER=postgres; aplica las migraciones si DB_AUTO_MIGRATE=true.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/phone"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" || cfg.Admin.Phone == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_EMAIL, ADMIN_PASSWORD y ADMIN_PHONE son obligatorios")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
	}

	accounts := usecase.NewAccountUseCase(postgres.NewUserRepository(pool), phone.NewNormalizer(cfg.Phone.Region))
	out, created, err := accounts.EnsureAdmin(ctx, dto.CreateUserRequest{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Phone:    cfg.Admin.Phone,
		Password: cfg.Admin.Password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("Administrador creado: %s (%s)\n", out.Email, out.ID)
		return
	}
	fmt.Printf("Cuenta existente promovida a administrador: %s (%s)\n", out.Email, out.ID)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sekolahdigital/tamuadmin/internal/config"
	"github.com/sekolahdigital/tamuadmin/internal/module/auth"
	"github.com/sekolahdigital/tamuadmin/internal/module/dashboard"
)

func cmdLogin(ctx context.Context, d *deps, args []string) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	email := flags.String("email", "", "admin email")
	password := flags.String("password", "", "admin password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	svc := auth.NewService(d.client, d.store)
	user, err := svc.Login(ctx, auth.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Printf("logged in as %s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Println("logged in")
	}
	return nil
}

func cmdLogout(ctx context.Context, d *deps) error {
	svc := auth.NewService(d.client, d.store)
	if err := svc.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdWhoami(d *deps) error {
	if !d.store.LoggedIn() {
		fmt.Println("not logged in")
		return nil
	}
	user := d.store.User()
	if user == nil {
		fmt.Println("logged in (no cached profile)")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	if exp := d.store.ExpiresAt(); !exp.IsZero() {
		fmt.Printf("token expires %s\n", exp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func cmdDashboard(ctx context.Context, d *deps) error {
	screen := dashboard.NewScreen(d.client, config.Duration(d.cfg.UI.DashboardNotifyTTL, config.DefaultDashboardNotifyTTL))
	data, err := screen.Load(ctx)
	if err != nil {
		printNotification(screen.Notifier().Current())
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Siswa\t%d\n", data.Stats.TotalSiswa)
	fmt.Fprintf(w, "Orang tua\t%d\n", data.Stats.TotalOrangtua)
	fmt.Fprintf(w, "Jabatan\t%d\n", data.Stats.TotalJabatan)
	fmt.Fprintf(w, "Pegawai\t%d\n", data.Stats.TotalPegawai)
	fmt.Fprintf(w, "Buku tamu\t%d\n", data.Stats.TotalBukuTamu)
	w.Flush()

	if len(data.RecentGuests) > 0 {
		fmt.Println("\nTamu terbaru:")
		gw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(gw, "ID\tNAMA\tINSTANSI\tKEPERLUAN\tTANGGAL")
		for _, g := range data.RecentGuests {
			fmt.Fprintf(gw, "%d\t%s\t%s\t%s\t%s\n", g.ID, g.Nama, g.Instansi, g.Keperluan, g.Tanggal)
		}
		gw.Flush()
	}
	return nil
}

func cmdSync(ctx context.Context, d *deps) error {
	screen := dashboard.NewScreen(d.client, config.Duration(d.cfg.UI.DashboardNotifyTTL, config.DefaultDashboardNotifyTTL))
	err := screen.Sync(ctx)
	printNotification(screen.Notifier().Current())
	return err
}

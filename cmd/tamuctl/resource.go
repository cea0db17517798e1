package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/config"
	"github.com/sekolahdigital/tamuadmin/internal/controller"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/module/bukutamu"
	"github.com/sekolahdigital/tamuadmin/internal/module/jabatan"
	"github.com/sekolahdigital/tamuadmin/internal/module/orangtua"
	"github.com/sekolahdigital/tamuadmin/internal/module/pegawai"
	"github.com/sekolahdigital/tamuadmin/internal/module/siswa"
)

// spec describes how one resource is driven and rendered on the terminal.
type spec[T any, F any] struct {
	name    string
	ctrl    *controller.Controller[T, F]
	filters []string // filter names exposed as list flags
	form    func(fs *flag.FlagSet) func() F
	header  string
	row     func(w io.Writer, t T)
	detail  func(w io.Writer, t T) // optional richer single-record view
}

func runResource(ctx context.Context, d *deps, name string, args []string) error {
	debounce := config.Duration(d.cfg.UI.Debounce, config.DefaultDebounce)
	ttl := config.Duration(d.cfg.UI.NotifyTTL, config.DefaultNotifyTTL)

	switch name {
	case "siswa":
		return resourceCommands(ctx, siswaSpec(d, debounce, ttl), args)
	case "jabatan":
		return resourceCommands(ctx, jabatanSpec(d, debounce, ttl), args)
	case "pegawai":
		return resourceCommands(ctx, pegawaiSpec(d, debounce, ttl), args)
	case "orangtua":
		return resourceCommands(ctx, orangtuaSpec(d, debounce, ttl), args)
	case "bukutamu":
		return resourceCommands(ctx, bukuTamuSpec(d, debounce, ttl), args)
	default:
		return fmt.Errorf("unknown resource %q", name)
	}
}

func resourceCommands[T any, F any](ctx context.Context, sp spec[T, F], args []string) error {
	defer sp.ctrl.Close()

	if len(args) == 0 {
		return fmt.Errorf("%s: missing subcommand (list, get, add, edit, del)", sp.name)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		return listCommand(ctx, sp, rest)
	case "get":
		return getCommand(ctx, sp, rest)
	case "add":
		return addCommand(ctx, sp, rest)
	case "edit":
		return editCommand(ctx, sp, rest)
	case "del":
		return delCommand(ctx, sp, rest)
	default:
		return fmt.Errorf("%s: unknown subcommand %q", sp.name, sub)
	}
}

func listCommand[T any, F any](ctx context.Context, sp spec[T, F], args []string) error {
	fs := flag.NewFlagSet(sp.name+" list", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 1, "page number")
	rows := fs.Int("rows", domain.DefaultRowsPerPage, "rows per page (5, 10, 25, 50)")

	filterValues := map[string]*string{}
	for _, f := range sp.filters {
		filterValues[f] = fs.String(f, "", "filter by "+f)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := domain.NewListQuery()
	q.Search = *search
	q.Page = *page
	q.RowsPerPage = *rows
	for name, value := range filterValues {
		if *value != "" {
			q.Filters[name] = *value
		}
	}

	sp.ctrl.SetQuery(ctx, q)

	st := sp.ctrl.State()
	if n := sp.ctrl.Notifier().Current(); n != nil && n.Kind == domain.NotifyError {
		return fmt.Errorf("%s", n.Text)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, sp.header)
	for _, r := range st.Rows {
		sp.row(w, r)
	}
	w.Flush()

	if st.Total == 0 {
		fmt.Println("(no data)")
		return nil
	}
	fmt.Printf("page %d/%d, showing %d-%d of %d\n", st.CurrentPage, st.LastPage, st.From, st.To, st.Total)
	return nil
}

func getCommand[T any, F any](ctx context.Context, sp spec[T, F], args []string) error {
	id, err := idArg(sp.name, args)
	if err != nil {
		return err
	}

	if err := sp.ctrl.OpenDetail(ctx, id); err != nil {
		return notifErr(sp.ctrl.Notifier(), err)
	}

	detail := sp.ctrl.State().Detail
	if detail.Record == nil {
		return fmt.Errorf("%s: no record loaded", sp.name)
	}
	if sp.detail != nil {
		sp.detail(os.Stdout, *detail.Record)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, sp.header)
	sp.row(w, *detail.Record)
	w.Flush()
	return nil
}

func addCommand[T any, F any](ctx context.Context, sp spec[T, F], args []string) error {
	fs := flag.NewFlagSet(sp.name+" add", flag.ExitOnError)
	build := sp.form(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := sp.ctrl.Create(ctx, build()); err != nil {
		return notifErr(sp.ctrl.Notifier(), err)
	}
	printNotification(sp.ctrl.Notifier().Current())
	return nil
}

func editCommand[T any, F any](ctx context.Context, sp spec[T, F], args []string) error {
	id, err := idArg(sp.name, args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet(sp.name+" edit", flag.ExitOnError)
	build := sp.form(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if err := sp.ctrl.Update(ctx, id, build()); err != nil {
		return notifErr(sp.ctrl.Notifier(), err)
	}
	printNotification(sp.ctrl.Notifier().Current())
	return nil
}

func delCommand[T any, F any](ctx context.Context, sp spec[T, F], args []string) error {
	id, err := idArg(sp.name, args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet(sp.name+" del", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	sp.ctrl.ArmDelete(id)

	if !*yes && !confirm(fmt.Sprintf("Hapus %s id %d? [y/N] ", sp.name, id)) {
		sp.ctrl.DisarmDelete()
		fmt.Println("dibatalkan")
		return nil
	}

	if err := sp.ctrl.ConfirmDelete(ctx); err != nil {
		return notifErr(sp.ctrl.Notifier(), err)
	}
	printNotification(sp.ctrl.Notifier().Current())
	return nil
}

func idArg(name string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s: missing id argument", name)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s: invalid id %q", name, args[0])
	}
	return id, nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// notifErr prefers the on-screen notification text over the raw error.
func notifErr(n *controller.Notifier, err error) error {
	if cur := n.Current(); cur != nil && cur.Kind == domain.NotifyError {
		return fmt.Errorf("%s", cur.Text)
	}
	return err
}

func printNotification(n *controller.Notification) {
	if n == nil {
		return
	}
	fmt.Println(n.Text)
}

func siswaSpec(d *deps, debounce, ttl time.Duration) spec[domain.Siswa, siswa.Form] {
	return spec[domain.Siswa, siswa.Form]{
		name:    "siswa",
		ctrl:    siswa.NewController(d.client, siswa.Options{Debounce: debounce, NotifyTTL: ttl}),
		filters: []string{siswa.FilterKelas},
		header:  "ID\tNIS\tNAMA\tJK\tKELAS\tKONTAK",
		row: func(w io.Writer, s domain.Siswa) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.NIS, s.NamaSiswa, s.JenisKelamin, s.Kelas, s.Kontak)
		},
		form: func(fs *flag.FlagSet) func() siswa.Form {
			nis := fs.String("nis", "", "student number")
			nama := fs.String("nama", "", "full name")
			jk := fs.String("jk", "", "gender (L or P)")
			kelas := fs.String("kelas", "", "class")
			alamat := fs.String("alamat", "", "address")
			kontak := fs.String("kontak", "", "phone number")
			return func() siswa.Form {
				return siswa.Form{
					NIS: *nis, NamaSiswa: *nama, JenisKelamin: *jk,
					Kelas: *kelas, Alamat: *alamat, Kontak: *kontak,
				}
			}
		},
	}
}

func jabatanSpec(d *deps, debounce, ttl time.Duration) spec[domain.Jabatan, jabatan.Form] {
	return spec[domain.Jabatan, jabatan.Form]{
		name:   "jabatan",
		ctrl:   jabatan.NewController(d.client, jabatan.Options{Debounce: debounce, NotifyTTL: ttl}),
		header: "ID\tNAMA JABATAN",
		row: func(w io.Writer, j domain.Jabatan) {
			fmt.Fprintf(w, "%d\t%s\n", j.ID, j.NamaJabatan)
		},
		form: func(fs *flag.FlagSet) func() jabatan.Form {
			nama := fs.String("nama", "", "job title name")
			return func() jabatan.Form {
				return jabatan.Form{NamaJabatan: *nama}
			}
		},
	}
}

func pegawaiSpec(d *deps, debounce, ttl time.Duration) spec[domain.Pegawai, pegawai.Form] {
	return spec[domain.Pegawai, pegawai.Form]{
		name:   "pegawai",
		ctrl:   pegawai.NewController(d.client, pegawai.Options{Debounce: debounce, NotifyTTL: ttl}),
		header: "ID\tNIP\tNAMA\tJABATAN\tKONTAK",
		row: func(w io.Writer, p domain.Pegawai) {
			title := ""
			if p.Jabatan != nil {
				title = p.Jabatan.NamaJabatan
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.NIP, p.NamaPegawai, title, p.Kontak)
		},
		form: func(fs *flag.FlagSet) func() pegawai.Form {
			nip := fs.String("nip", "", "employee number")
			nama := fs.String("nama", "", "full name")
			idJabatan := fs.Int("jabatan", 0, "job title id")
			kontak := fs.String("kontak", "", "phone number")
			return func() pegawai.Form {
				return pegawai.Form{NIP: *nip, NamaPegawai: *nama, IDJabatan: *idJabatan, Kontak: *kontak}
			}
		},
	}
}

func orangtuaSpec(d *deps, debounce, ttl time.Duration) spec[domain.OrangTua, orangtua.Form] {
	return spec[domain.OrangTua, orangtua.Form]{
		name:   "orangtua",
		ctrl:   orangtua.NewController(d.client, orangtua.Options{Debounce: debounce, NotifyTTL: ttl}),
		header: "ID\tNAMA\tALAMAT\tKONTAK",
		row: func(w io.Writer, o domain.OrangTua) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.ID, o.Nama, o.Alamat, o.Kontak)
		},
		form: func(fs *flag.FlagSet) func() orangtua.Form {
			nama := fs.String("nama", "", "full name")
			alamat := fs.String("alamat", "", "address")
			kontak := fs.String("kontak", "", "phone number")
			return func() orangtua.Form {
				return orangtua.Form{Nama: *nama, Alamat: *alamat, Kontak: *kontak}
			}
		},
	}
}

func bukuTamuSpec(d *deps, debounce, ttl time.Duration) spec[domain.BukuTamu, bukutamu.Form] {
	return spec[domain.BukuTamu, bukutamu.Form]{
		name:    "bukutamu",
		ctrl:    bukutamu.NewController(d.client, bukutamu.Options{Debounce: debounce, NotifyTTL: ttl}),
		filters: []string{bukutamu.FilterRole, bukutamu.FilterDate},
		header:  "ID\tNAMA\tINSTANSI\tROLE\tKEPERLUAN\tTANGGAL",
		row: func(w io.Writer, b domain.BukuTamu) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Nama, b.Instansi, b.Role, b.Keperluan, b.Tanggal)
		},
		detail: func(w io.Writer, b domain.BukuTamu) {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\t%d\n", b.ID)
			fmt.Fprintf(tw, "Nama\t%s\n", b.Nama)
			fmt.Fprintf(tw, "Instansi\t%s\n", b.Instansi)
			fmt.Fprintf(tw, "Role\t%s\n", b.Role)
			fmt.Fprintf(tw, "Keperluan\t%s\n", b.Keperluan)
			if link := bukutamu.WhatsAppLink(b.Kontak); link != "" {
				fmt.Fprintf(tw, "Kontak\t%s (%s)\n", b.Kontak, link)
			} else {
				fmt.Fprintf(tw, "Kontak\t%s\n", b.Kontak)
			}
			fmt.Fprintf(tw, "Tanggal\t%s\n", b.Tanggal)
			tw.Flush()
		},
		form: func(fs *flag.FlagSet) func() bukutamu.Form {
			nama := fs.String("nama", "", "guest name")
			instansi := fs.String("instansi", "", "institution")
			role := fs.String("role", "", "visitor role")
			keperluan := fs.String("keperluan", "", "purpose of visit")
			kontak := fs.String("kontak", "", "phone number")
			tanggal := fs.String("tanggal", "", "visit date (YYYY-MM-DD)")
			return func() bukutamu.Form {
				return bukutamu.Form{
					Nama: *nama, Instansi: *instansi, Role: *role,
					Keperluan: *keperluan, Kontak: *kontak, Tanggal: *tanggal,
				}
			}
		},
	}
}

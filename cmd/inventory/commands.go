package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

const timeLayout = "2006-01-02 15:04"

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// productFlags flags compartidos por add y update.
type productFlags struct {
	name, brand, size, category       string
	purchaseLocation, storageLocation string
	price, expiry                     string
	stock, minStock                   int
}

func (f *productFlags) register(fs *pflag.FlagSet, withStock bool) {
	fs.StringVar(&f.name, "name", "", "nombre")
	fs.StringVar(&f.brand, "brand", "", "marca")
	fs.StringVar(&f.size, "size", "", "tamaño o presentación")
	fs.StringVar(&f.category, "category", "", "categoría")
	fs.IntVar(&f.minStock, "min-stock", entity.DefaultMinStock, "stock mínimo")
	fs.StringVar(&f.purchaseLocation, "purchase-location", "", "dónde se compra")
	fs.StringVar(&f.storageLocation, "storage-location", "", "dónde se guarda")
	fs.StringVar(&f.price, "price", "0", "precio")
	fs.StringVar(&f.expiry, "expiry", "", "vencimiento YYYY-MM-DD")
	if withStock {
		fs.IntVar(&f.stock, "stock", 0, "stock inicial")
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q: %w", s, errUsage)
	}
	return id, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("precio inválido %q: %w", s, errUsage)
	}
	return price, nil
}

// singleID parsea los flags de fs y exige exactamente un argumento <id>.
func singleID(fs *pflag.FlagSet, args []string) (int64, error) {
	if err := fs.Parse(args); err != nil {
		return 0, fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() != 1 {
		return 0, errUsage
	}
	return parseID(fs.Arg(0))
}

func runInit(_ context.Context, c *cli, _ []string) error {
	if c.cfg.DB.Driver == config.DriverSQLite {
		fmt.Fprintf(c.out, "Base de datos lista: %s\n", c.cfg.DB.Path)
		return nil
	}
	fmt.Fprintf(c.out, "Base de datos lista (%s)\n", c.cfg.DB.Driver)
	return nil
}

func runList(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("list")
	var filter entity.ProductFilter
	fs.StringVar(&filter.Status, "status", "", "out_of_stock | low_stock | normal")
	fs.StringVar(&filter.Search, "search", "", "texto en nombre o marca")
	fs.StringVar(&filter.Category, "category", "", "categoría exacta")
	fs.BoolVar(&filter.ExpiredOnly, "expired", false, "solo productos vencidos")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	products, expired, err := c.ledger.FindProducts(ctx, filter)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tMARCA\tCATEGORÍA\tSTOCK\tMÍN\tESTADO")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID(), p.Name(), p.Brand(), p.Category(), p.CurrentStock(), p.MinStock(), p.StockStatus())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d producto(s)\n", len(products))
	if w := entity.ExpiryWarning(expired); w != "" {
		fmt.Fprintf(c.out, "Aviso: %s\n", w)
	}
	return nil
}

func runShow(ctx context.Context, c *cli, args []string) error {
	id, err := singleID(newFlagSet("show"), args)
	if err != nil {
		return err
	}
	p, err := c.ledger.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	printProduct(c, p)
	return nil
}

func printProduct(c *cli, p *entity.Product) {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID())
	fmt.Fprintf(tw, "Nombre:\t%s\n", p.Name())
	fmt.Fprintf(tw, "Marca:\t%s\n", p.Brand())
	fmt.Fprintf(tw, "Tamaño:\t%s\n", p.Size())
	fmt.Fprintf(tw, "Categoría:\t%s\n", p.Category())
	fmt.Fprintf(tw, "Stock:\t%d (mín. %d, %s)\n", p.CurrentStock(), p.MinStock(), p.StockStatus())
	fmt.Fprintf(tw, "Compra en:\t%s\n", p.PurchaseLocation())
	fmt.Fprintf(tw, "Guardado en:\t%s\n", p.StorageLocation())
	fmt.Fprintf(tw, "Precio:\t%s\n", p.Price().String())
	if p.ExpiryDate() != "" {
		expired := ""
		if p.IsExpired() {
			expired = " (vencido)"
		}
		fmt.Fprintf(tw, "Vence:\t%s%s\n", p.ExpiryDate(), expired)
	}
	_ = tw.Flush()
}

func runAdd(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("add")
	var f productFlags
	f.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() != 0 {
		return errUsage
	}
	price, err := parsePrice(f.price)
	if err != nil {
		return err
	}
	p := entity.NewProduct(entity.ProductFields{
		Name:             f.name,
		Brand:            f.brand,
		Size:             f.size,
		Category:         f.category,
		CurrentStock:     f.stock,
		MinStock:         f.minStock,
		PurchaseLocation: f.purchaseLocation,
		StorageLocation:  f.storageLocation,
		Price:            price,
		ExpiryDate:       f.expiry,
	})
	if err := c.ledger.CreateProduct(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Producto %d creado: %s\n", p.ID(), p)
	return nil
}

func runUpdate(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("update")
	var f productFlags
	f.register(fs, false)
	id, err := singleID(fs, args)
	if err != nil {
		return err
	}

	var req dto.UpdateProductRequest
	strFlags := map[string]struct {
		dst **string
		val *string
	}{
		"name":              {&req.Name, &f.name},
		"brand":             {&req.Brand, &f.brand},
		"size":              {&req.Size, &f.size},
		"category":          {&req.Category, &f.category},
		"purchase-location": {&req.PurchaseLocation, &f.purchaseLocation},
		"storage-location":  {&req.StorageLocation, &f.storageLocation},
		"expiry":            {&req.ExpiryDate, &f.expiry},
	}
	for name, m := range strFlags {
		if fs.Changed(name) {
			*m.dst = m.val
		}
	}
	if fs.Changed("min-stock") {
		req.MinStock = &f.minStock
	}
	if fs.Changed("price") {
		price, err := parsePrice(f.price)
		if err != nil {
			return err
		}
		req.Price = &price
	}

	p, err := c.ledger.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	req.ApplyTo(p)
	if err := c.ledger.UpdateProduct(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Producto %d actualizado: %s\n", p.ID(), p)
	return nil
}

func runDelete(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("delete")
	yes := fs.Bool("yes", false, "confirmar la eliminación")
	id, err := singleID(fs, args)
	if err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("se eliminará el producto %d y todo su historial; confirme con --yes: %w", id, errUsage)
	}
	res, err := c.ledger.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Producto %q eliminado (%d entradas de historial)\n", res.ProductName, res.HistoryRemoved)
	return nil
}

func runOperation(operation string) func(ctx context.Context, c *cli, args []string) error {
	return func(ctx context.Context, c *cli, args []string) error {
		fs := newFlagSet(operation)
		memo := fs.String("memo", "", "nota")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		if fs.NArg() != 2 {
			return errUsage
		}
		id, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("cantidad inválida %q: %w", fs.Arg(1), errUsage)
		}
		res, err := c.ledger.ApplyOperation(ctx, id, operation, qty, *memo)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s: %d -> %d (%s %+d)\n",
			res.ProductName, res.OldStock, res.NewStock, res.OperationType, res.QuantityChange)
		if res.Warning != "" {
			fmt.Fprintf(c.out, "Aviso: %s %s\n", res.ProductName, res.Warning)
		}
		return nil
	}
}

func runHistory(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("history")
	productID := fs.Int64("product", 0, "filtrar por producto")
	limit := fs.Int("limit", 0, "máximo de entradas (por defecto HISTORY_LIMIT)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%v: %w", err, errUsage)
	}
	if *productID < 0 {
		return fmt.Errorf("producto inválido: %w", errUsage)
	}
	entries, err := c.ledger.ListHistory(ctx, *productID, *limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FECHA\tPRODUCTO\tOPERACIÓN\tCAMBIO\tSTOCK\tNOTA")
	for _, h := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%+d\t%d\t%s\n",
			h.CreatedAt().Local().Format(timeLayout), h.ProductName(), h.OperationType(),
			h.QuantityChange(), h.StockAfter(), h.Memo())
	}
	return tw.Flush()
}

func runStats(ctx context.Context, c *cli, args []string) error {
	id, err := singleID(newFlagSet("stats"), args)
	if err != nil {
		return err
	}
	p, err := c.ledger.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	st, err := c.ledger.GetStatistics(ctx, id)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Producto:\t%s\n", p.Name())
	fmt.Fprintf(tw, "Operaciones:\t%d\n", st.TotalOperations)
	fmt.Fprintf(tw, "Compras:\t%d (total %d)\n", st.PurchaseCount, st.TotalPurchased)
	fmt.Fprintf(tw, "Consumos:\t%d (total %d)\n", st.UseCount, st.TotalUsed)
	fmt.Fprintf(tw, "Ajustes:\t%d\n", st.AdjustCount)
	if st.FirstOperation != nil {
		fmt.Fprintf(tw, "Primera:\t%s\n", st.FirstOperation.Local().Format(timeLayout))
		fmt.Fprintf(tw, "Última:\t%s\n", st.LastOperation.Local().Format(timeLayout))
	}
	return tw.Flush()
}

func runShopping(ctx context.Context, c *cli, _ []string) error {
	list, err := c.replenishment.GenerateReplenishmentList(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(c.out, "No hay nada que comprar")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRODUCTO\tESTADO\tSTOCK\tCOMPRAR\tDÓNDE")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%d\t%s\n",
			s.Priority, s.ProductName, s.StockStatus, s.CurrentStock, s.MinStock, s.SuggestedOrderQty, s.PurchaseLocation)
	}
	return tw.Flush()
}

func runSeed(ctx context.Context, c *cli, _ []string) error {
	existing, err := c.ledger.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Fprintf(c.out, "El inventario ya tiene %d producto(s); no se cargan ejemplos\n", len(existing))
		return nil
	}
	for _, p := range entity.SampleProducts() {
		if err := c.ledger.CreateProduct(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "  %d  %s\n", p.ID(), p)
	}
	return nil
}

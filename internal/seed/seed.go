// Package seed loads the initial contract book. The dataset predates the
// web form and uses the legacy conventions: DD/MM/YYYY date ranges and
// amounts with either comma or dot decimals. Running the importer replaces
// the whole record set and makes sure the settings singleton exists.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/core"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/storage"
)

type entry struct {
	leader   string
	company  string
	dates    string // "DD/MM/YYYY - DD/MM/YYYY", empty when unknown
	email    string
	service  string
	amountHT string
	status   core.Status
}

var entries = []entry{
	{"Damien Lambert", "Actimaine", "05/12/2024 - 05/06/2026", "contact@acti-maine.fr", "SEO", "480", core.StatusActive},
	{"Pierre Guillard", "Méréo", "05/10/2024 - 05/10/2025", "guiard.pierre@gmail.com", "SEO", "150", core.StatusActive},
	{"Adeline Babel", "COMIZI", "05/05/2025 - 05/05/2026", "ababel@comizi.fr", "SEO", "250", core.StatusActive},
	{"Julien Bidois", "Julien Bidois Chef", "05/04/2025 - 04/04/2026", "julienbidois8@gmail.com", "SEO", "250", core.StatusActive},
	{"Zidane Desbarres", "DP RENOV", "05/11/2024 - 05/07/2027", "desbarrephillippe@gmail.com", "SEO", "291.67", core.StatusActive},
	{"Philippe Paumier", "Ventsetcourbes", "05/04/2025 - 05/08/2026", "ventsetcourbes@gmail.com", "SEO", "316.67", core.StatusActive},
	{"David Botton", "Boat On Yacht Club", "05/04/2025 - 05/10/2026", "botton.david@gmail.com", "Maintenance web / SEO", "692.5", core.StatusActive},
	{"Clément Nignol", "STM BZH", "05/06/2025 - 05/10/2026", "clement.nignol@stm-bzh.fr", "SEO", "333,3", core.StatusActive},
	{"Edouard Suchet", "ES COMMUNICATION", "05/06/2025 - 05/06/2026", "edouard@es-solutions.fr", "SEO", "250", core.StatusActive},
	{"Julien Bidoit", "Chef Julien Bidois", "", "julienbidois8@gmail.com", "SEO", "300", core.StatusActive},
	{"Mehrad", "Matineh Food", "05/11/2025 - 05/11/2026", "contact@matinehfood.com", "SEO", "300", core.StatusActive},
	{"Stéphane Hortelano", "Rennes Pneus", "05/04/2025 - 05/04/2026", "contact@rennespneus.fr", "SEO", "500", core.StatusSuspended},
	{"Amhed", "AS Prestige", "05/07/2025 - 05/07/2026", "contact@rennespneus.fr", "SEO", "500", core.StatusSuspended},
	{"Ibrahim", "Renov +", "", "contact@sas-renovplus.com", "SEO", "500", core.StatusActive},
	{"Ibrahim", "Matcha", "", "contact@sas-renovplus.com", "SEO", "500", core.StatusActive},
	{"Solatrack", "Outil web", "", "sis.jadelefeuvre@gmail.com", "Maintenance web", "200", core.StatusActive},
	{"Solatrack", "Outil web", "", "sis.jadelefeuvre@gmail.com", "Paiement de l'outil", "1200", core.StatusActive},
	{"Benoît Planchon", "Happy Kite Surf", "05/11/2024 - 05/11/2025", "benoitplanchon@gmail.com", "SEO", "316.67", core.StatusTerminated},
	{"Brad Mouche", "ECO HABITAT", "05/06/2025 - 05/06/2026", "ecohabitat44.contact@gmail.com", "SEO", "416.67", core.StatusTerminated},
	{"Safak Evin", "LAS SIETTE", "05/07/2024 - 05/07/2025", "safak.evin@las-siette.fr", "SEO", "100", core.StatusTerminated},
	{"Louise Lequipee", "EPICU", "05/04/2024 - 05/08/2025", "contact@epicu.fr", "Site web", "550", core.StatusTerminated},
	{"William Claudi", "Protecttoit", "05/04/2024 - 05/04/2025", "protecttoit@gmail.com", "SEO", "400", core.StatusTerminated},
	{"Gautier Lorgeoux", "Pépites", "05/05/2022 - 05/05/2025", "contact@pepites-lacave.com", "SEO", "455", core.StatusTerminated},
	{"Camille", "Guest House Service", "05/07/2025 - 05/07/2026", "contact@guesthomeservice.fr", "SEO", "500", core.StatusTerminated},
	{"Marc Suchet", "Mister Pool", "05/03/2025 - 05/09/2026", "info@mister-pool.fr", "Maintenance web / SEO", "1167", core.StatusTerminated},
	{"Maxime Guillois", "Maxx Le Magicien", "05/12/2024 - 05/12/2025", "guilloismaxime@yahoo.fr", "SEO", "291.67", core.StatusTerminated},
}

// Records builds the seed dataset through the same normalization rules the
// live forms use.
func Records() ([]core.Record, error) {
	records := make([]core.Record, 0, len(entries))
	for _, e := range entries {
		amount, err := core.ParseAmount(e.amountHT)
		if err != nil {
			return nil, fmt.Errorf("seed amount %q for %s: %w", e.amountHT, e.company, err)
		}
		start, end := core.ParseDateRange(e.dates)
		records = append(records, core.Record{
			Leader:    e.leader,
			Company:   e.company,
			Email:     core.NormalizeEmail(e.email),
			Service:   e.service,
			AmountHT:  amount,
			Frequency: core.FrequencyMonthly,
			Status:    e.status,
			StartDate: start,
			EndDate:   end,
		})
	}
	return records, nil
}

// Run replaces the whole record set with the seed dataset and ensures the
// settings singleton exists with its defaults.
func Run(ctx context.Context, repo *storage.Repository) error {
	if _, err := repo.GetSettings(ctx); err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}

	records, err := Records()
	if err != nil {
		return err
	}
	if err := repo.ReplaceRecords(ctx, records); err != nil {
		return fmt.Errorf("replace records: %w", err)
	}

	slog.InfoContext(ctx, "Seed import finished", "records", len(records))
	return nil
}

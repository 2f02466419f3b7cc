package controllers

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"

	"school-inventory/internal/dto"
	apperrors "school-inventory/pkg/errors"
)

var (
	peripheralFieldKey = regexp.MustCompile(`^peripherals\[(\d+)\]\[(kind|brand|model|serial)\]$`)
	nestedFieldKey     = regexp.MustCompile(`^(detail|graphics)\[([a-z_]+)\]$`)
)

// equipmentComposition - деталь, видеокарта и периферия из формы.
type equipmentComposition struct {
	Detail      *dto.PcDetailDTO
	Graphics    *dto.GraphicsDTO
	Peripherals []dto.PeripheralDTO
}

func decodeComposition(form url.Values) (equipmentComposition, error) {
	var out equipmentComposition
	out.Peripherals = decodePeripherals(form)

	detail := map[string]string{}
	graphics := map[string]string{}
	for key, values := range form {
		m := nestedFieldKey.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		if m[1] == "detail" {
			detail[m[2]] = values[0]
		} else {
			graphics[m[2]] = values[0]
		}
	}

	if len(detail) > 0 {
		d := &dto.PcDetailDTO{
			RamType:     optionalString(detail["ram_type"]),
			StorageType: optionalString(detail["storage_type"]),
			Processor:   optionalString(detail["processor"]),
			Notes:       optionalString(detail["notes"]),
		}
		var err error
		if d.RamGB, err = optionalInt("detail[ram_gb]", detail["ram_gb"]); err != nil {
			return out, err
		}
		if d.StorageGB, err = optionalInt("detail[storage_gb]", detail["storage_gb"]); err != nil {
			return out, err
		}
		out.Detail = d
	}

	if len(graphics) > 0 {
		g := &dto.GraphicsDTO{
			Brand: optionalString(graphics["brand"]),
			Model: optionalString(graphics["model"]),
		}
		var err error
		if g.VramGB, err = optionalInt("graphics[vram_gb]", graphics["vram_gb"]); err != nil {
			return out, err
		}
		out.Graphics = g
	}
	return out, nil
}

// decodePeripherals группирует ключи peripherals[i][field] по индексу.
// Индекс попадает в результат, только если у него непустой kind; сами индексы отбрасываются.
func decodePeripherals(form url.Values) []dto.PeripheralDTO {
	grouped := map[int]map[string]string{}
	for key, values := range form {
		m := peripheralFieldKey.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if grouped[idx] == nil {
			grouped[idx] = map[string]string{}
		}
		grouped[idx][m[2]] = strings.TrimSpace(values[0])
	}

	indexes := make([]int, 0, len(grouped))
	for idx := range grouped {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	out := make([]dto.PeripheralDTO, 0, len(indexes))
	for _, idx := range indexes {
		fields := grouped[idx]
		if fields["kind"] == "" {
			continue
		}
		out = append(out, dto.PeripheralDTO{
			Kind:   fields["kind"],
			Brand:  fields["brand"],
			Model:  fields["model"],
			Serial: fields["serial"],
		})
	}
	return out
}

func optionalString(v string) null.String {
	v = strings.TrimSpace(v)
	if v == "" {
		return null.String{}
	}
	return null.StringFrom(v)
}

func optionalInt(field, v string) (null.Int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return null.Int{}, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return null.Int{}, apperrors.NewValidationError("поле %s должно быть неотрицательным числом", field)
	}
	return null.IntFrom(n), nil
}

package cases

var builtinCases = []TestCase{
	{
		ID:          "resfriado-comun",
		Description: "Resfriado común",
		Symptoms: SymptomProfile{
			"fiebre": 6, "dolor_cabeza": 4, "congestion_nasal": 8, "dolor_garganta": 7, "tos": 5, "fatiga": 3,
		},
		ExpectedCategory: CategoryMild,
	},
	{
		ID:          "emergencia-cardiaca",
		Description: "Emergencia cardíaca",
		Symptoms: SymptomProfile{
			"dolor_pecho": 10, "dificultad_respirar": 9, "mareos": 7, "nausea": 6, "fatiga": 8,
		},
		ExpectedCategory: CategoryAcute,
	},
	{
		ID:          "paciente-sano",
		Description: "Paciente sano",
		Symptoms: SymptomProfile{
			"fatiga": 2, "dolor_muscular": 1, "mareos": 1,
		},
		ExpectedCategory: CategoryNotSick,
	},
	{
		ID:          "diabetes-no-controlada",
		Description: "Diabetes no controlada",
		Symptoms: SymptomProfile{
			"perdida_peso": 8, "fatiga": 9, "cambios_vision": 7, "dificultad_respirar": 5, "nausea": 6,
		},
		ExpectedCategory: CategoryChronic,
	},
}

// InlineSource supplies cases that are compiled into the harness. If Cases is nil, the four
// built-in cases are used. Load never fails.
type InlineSource struct {
	Cases []TestCase
}

func (s InlineSource) Load() ([]TestCase, error) {
	if s.Cases == nil {
		return cloneAll(builtinCases), nil
	}
	return cloneAll(s.Cases), nil
}

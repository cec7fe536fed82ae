package dateutil

import (
	"golang.org/x/text/language"
)

// Locale holds the names a language uses in dates. Weekdays start on Sunday,
// as time.Weekday does.
type Locale struct {
	Months        [12]string
	MonthsShort   [12]string
	Weekdays      [7]string
	WeekdaysShort [7]string
	// Long is the language's usual long date format.
	Long string
}

var english = Locale{
	Months:        [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	MonthsShort:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	WeekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	Long:          "MMMM D, YYYY",
}

// supported pairs with locales by index.
var (
	supported = []language.Tag{
		language.English,
		language.French,
		language.German,
		language.Spanish,
		language.Italian,
		language.Portuguese,
		language.Russian,
	}
	locales = []Locale{
		english,
		{
			Months:        [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
			MonthsShort:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
			Weekdays:      [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
			WeekdaysShort: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
			Long:          "D MMMM YYYY",
		},
		{
			Months:        [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
			MonthsShort:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
			Weekdays:      [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
			WeekdaysShort: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
			Long:          "D. MMMM YYYY",
		},
		{
			Months:        [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
			MonthsShort:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
			Weekdays:      [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
			WeekdaysShort: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
			Long:          "D [de] MMMM [de] YYYY",
		},
		{
			Months:        [12]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
			MonthsShort:   [12]string{"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
			Weekdays:      [7]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"},
			WeekdaysShort: [7]string{"dom", "lun", "mar", "mer", "gio", "ven", "sab"},
			Long:          "D MMMM YYYY",
		},
		{
			Months:        [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
			MonthsShort:   [12]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."},
			Weekdays:      [7]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
			WeekdaysShort: [7]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."},
			Long:          "D [de] MMMM [de] YYYY",
		},
		{
			// Genitive month names: they always follow a day number.
			Months:        [12]string{"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
			MonthsShort:   [12]string{"янв.", "февр.", "мар.", "апр.", "мая", "июн.", "июл.", "авг.", "сент.", "окт.", "нояб.", "дек."},
			Weekdays:      [7]string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"},
			WeekdaysShort: [7]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"},
			Long:          "D MMMM YYYY [г.]",
		},
	}
	matcher = language.NewMatcher(supported)
)

// LocaleFor returns the closest supported locale for a BCP 47 tag.
// Unparsable or unsupported tags get English.
func LocaleFor(lang string) Locale {
	tag, err := language.Parse(lang)
	if err != nil {
		return english
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return english
	}
	return locales[index]
}

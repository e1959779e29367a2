// Package export produce i file scaricabili di un'esecuzione del generatore:
// calendario ICS, tabelle CSV e registro decisioni in testo semplice.
package export

// Nomi italiani di mesi e giorni, usati nelle intestazioni dei file esportati.
var monthNames = [13]string{
	"", "Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
	"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
}

// 0 = lunedì, come nel resto del gestionale.
var weekdayNames = [7]string{"Lun", "Mar", "Mer", "Gio", "Ven", "Sab", "Dom"}

var weekdayFullNames = [7]string{
	"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato", "Domenica",
}

func weekdayIndex(weekday int) int {
	// time.Weekday parte dalla domenica; il gestionale parte dal lunedì.
	return (weekday + 6) % 7
}

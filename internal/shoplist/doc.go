// Package shoplist implements the shopping list state machine: parsing the
// canonical text form into a models.ShoppingList, rendering it back, repairing
// free-form headers, marking purchases, applying edits and computing progress.
//
// Every function is pure. Functions that change a list return a new value and
// leave their input untouched.
package shoplist

package models

import "testing"

func TestMemberPrice(t *testing.T) {
	item := MenuItem{ID: "ceviche", Name: "Ceviche Clásico", Price: 35.00}
	want := 29.75 // 15% off
	if got := item.MemberPrice(); got != want {
		t.Fatalf("MemberPrice = %.4f, want %.4f", got, want)
	}
	// the discount is derived, the stored price never changes
	if item.Price != 35.00 {
		t.Fatalf("Price mutated to %.2f", item.Price)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !ReservationPending.OwnerCancellable() {
		t.Fatal("pending must be owner-cancellable")
	}
	for _, s := range []ReservationStatus{ReservationConfirmed, ReservationCancelled} {
		if s.OwnerCancellable() {
			t.Fatalf("%s must not be owner-cancellable", s)
		}
	}
	if ReservationStatus("otro").Valid() {
		t.Fatal("unknown reservation status must not validate")
	}

	if !OrderReceived.OwnerCancellable() {
		t.Fatal("recibido must be owner-cancellable")
	}
	for _, s := range []OrderStatus{OrderPreparing, OrderReady, OrderDelivered, OrderCancelled} {
		if s.OwnerCancellable() {
			t.Fatalf("%s must not be owner-cancellable", s)
		}
	}
}

package pgmarket

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		// orders and products are owned by the wider marketplace; the minimal
		// shape below is what the history queries read.
		`
CREATE TABLE IF NOT EXISTS products (
  product_id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS orders (
  order_id BIGSERIAL PRIMARY KEY,
  product_id BIGINT NOT NULL,
  buyer_id BIGINT NOT NULL,
  order_summary_id BIGINT NOT NULL DEFAULT 0,
  order_history_id BIGINT NOT NULL DEFAULT 0,
  product_type INT NOT NULL,
  payment_method TEXT NOT NULL DEFAULT '',
  order_date TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer_id ON orders(buyer_id)`,
		`
CREATE TABLE IF NOT EXISTS tracked_orders (
  tracked_order_id BIGSERIAL PRIMARY KEY,
  order_id BIGINT NOT NULL UNIQUE,
  order_status TEXT NOT NULL,
  estimated_delivery_date DATE NOT NULL,
  delivery_address TEXT NOT NULL DEFAULT ''
)`,
		`
CREATE TABLE IF NOT EXISTS order_checkpoints (
  checkpoint_id BIGSERIAL PRIMARY KEY,
  checkpoint_timestamp TIMESTAMPTZ NOT NULL,
  location TEXT NULL,
  description TEXT NOT NULL,
  checkpoint_status TEXT NOT NULL,
  tracked_order_id BIGINT NOT NULL REFERENCES tracked_orders(tracked_order_id) ON DELETE CASCADE
)`,
		`CREATE INDEX IF NOT EXISTS idx_order_checkpoints_tracked_order_id ON order_checkpoints(tracked_order_id, checkpoint_id)`,
		`
CREATE TABLE IF NOT EXISTS notifications (
  notification_id BIGSERIAL PRIMARY KEY,
  recipient_id BIGINT NOT NULL,
  notification_timestamp TIMESTAMPTZ NOT NULL,
  is_read BOOLEAN NOT NULL DEFAULT FALSE,
  category TEXT NOT NULL,
  contract_id BIGINT NULL,
  is_accepted BOOLEAN NULL,
  product_id BIGINT NULL,
  order_id BIGINT NULL,
  shipping_state TEXT NULL,
  delivery_date DATE NULL,
  expiration_date TIMESTAMPTZ NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_recipient_id ON notifications(recipient_id, notification_timestamp DESC)`,

		// Tracked orders and checkpoints.
		`
CREATE OR REPLACE FUNCTION uspInsertTrackedOrder(
  p_order_id BIGINT, p_status TEXT, p_estimated_delivery_date DATE, p_delivery_address TEXT
) RETURNS BIGINT LANGUAGE sql AS $$
  INSERT INTO tracked_orders (order_id, order_status, estimated_delivery_date, delivery_address)
  VALUES (p_order_id, p_status, p_estimated_delivery_date, p_delivery_address)
  RETURNING tracked_order_id
$$`,
		`
CREATE OR REPLACE FUNCTION uspInsertOrderCheckpoint(
  p_timestamp TIMESTAMPTZ, p_location TEXT, p_description TEXT, p_status TEXT, p_tracked_order_id BIGINT
) RETURNS BIGINT LANGUAGE sql AS $$
  INSERT INTO order_checkpoints (checkpoint_timestamp, location, description, checkpoint_status, tracked_order_id)
  VALUES (p_timestamp, p_location, p_description, p_status, p_tracked_order_id)
  RETURNING checkpoint_id
$$`,
		`
CREATE OR REPLACE FUNCTION uspDeleteTrackedOrder(p_tracked_order_id BIGINT)
RETURNS INTEGER LANGUAGE plpgsql AS $$
DECLARE n INTEGER;
BEGIN
  DELETE FROM tracked_orders WHERE tracked_order_id = p_tracked_order_id;
  GET DIAGNOSTICS n = ROW_COUNT;
  RETURN n;
END
$$`,
		`
CREATE OR REPLACE FUNCTION uspDeleteOrderCheckpoint(p_checkpoint_id BIGINT)
RETURNS INTEGER LANGUAGE plpgsql AS $$
DECLARE n INTEGER;
BEGIN
  DELETE FROM order_checkpoints WHERE checkpoint_id = p_checkpoint_id;
  GET DIAGNOSTICS n = ROW_COUNT;
  RETURN n;
END
$$`,
		`
CREATE OR REPLACE FUNCTION uspUpdateTrackedOrder(
  p_tracked_order_id BIGINT, p_estimated_delivery_date DATE, p_status TEXT, p_delivery_address TEXT
) RETURNS INTEGER LANGUAGE plpgsql AS $$
DECLARE n INTEGER;
BEGIN
  UPDATE tracked_orders
  SET estimated_delivery_date = p_estimated_delivery_date,
      order_status = p_status,
      delivery_address = COALESCE(p_delivery_address, delivery_address)
  WHERE tracked_order_id = p_tracked_order_id;
  GET DIAGNOSTICS n = ROW_COUNT;
  RETURN n;
END
$$`,
		`
CREATE OR REPLACE FUNCTION uspUpdateOrderCheckpoint(
  p_checkpoint_id BIGINT, p_timestamp TIMESTAMPTZ, p_location TEXT, p_description TEXT, p_status TEXT
) RETURNS INTEGER LANGUAGE plpgsql AS $$
DECLARE n INTEGER;
BEGIN
  UPDATE order_checkpoints
  SET checkpoint_timestamp = p_timestamp,
      location = p_location,
      description = p_description,
      checkpoint_status = p_status
  WHERE checkpoint_id = p_checkpoint_id;
  GET DIAGNOSTICS n = ROW_COUNT;
  RETURN n;
END
$$`,

		// Order history. Buyer 0 selects every buyer.
		`
CREATE OR REPLACE FUNCTION get_borrowed_order_history(p_buyer_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders
  WHERE product_type = 3 AND (p_buyer_id = 0 OR buyer_id = p_buyer_id)
  ORDER BY order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_new_or_used_order_history(p_buyer_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders
  WHERE product_type IN (1, 2) AND (p_buyer_id = 0 OR buyer_id = p_buyer_id)
  ORDER BY order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_orders_from_last_3_months(p_buyer_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders
  WHERE order_date >= now() - INTERVAL '3 months' AND (p_buyer_id = 0 OR buyer_id = p_buyer_id)
  ORDER BY order_date DESC, order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_orders_from_last_6_months(p_buyer_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders
  WHERE order_date >= now() - INTERVAL '6 months' AND (p_buyer_id = 0 OR buyer_id = p_buyer_id)
  ORDER BY order_date DESC, order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_orders_from_2024(p_buyer_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders
  WHERE EXTRACT(YEAR FROM order_date AT TIME ZONE 'UTC') = 2024 AND (p_buyer_id = 0 OR buyer_id = p_buyer_id)
  ORDER BY order_date DESC, order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_orders_from_2025(p_buyer_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders
  WHERE EXTRACT(YEAR FROM order_date AT TIME ZONE 'UTC') = 2025 AND (p_buyer_id = 0 OR buyer_id = p_buyer_id)
  ORDER BY order_date DESC, order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_orders_by_name(p_buyer_id BIGINT, p_text TEXT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT o.* FROM orders o
  JOIN products p ON p.product_id = o.product_id
  WHERE strpos(lower(p.name), lower(p_text)) > 0 AND (p_buyer_id = 0 OR o.buyer_id = p_buyer_id)
  ORDER BY o.order_id
$$`,
		`
CREATE OR REPLACE FUNCTION get_orders_from_order_history(p_order_history_id BIGINT)
RETURNS SETOF orders LANGUAGE sql STABLE AS $$
  SELECT * FROM orders WHERE order_history_id = p_order_history_id ORDER BY order_id
$$`,

		// Notifications.
		`
CREATE OR REPLACE FUNCTION AddNotification(
  p_recipient_id BIGINT, p_timestamp TIMESTAMPTZ, p_category TEXT,
  p_contract_id BIGINT, p_is_accepted BOOLEAN, p_product_id BIGINT, p_order_id BIGINT,
  p_shipping_state TEXT, p_delivery_date DATE, p_expiration_date TIMESTAMPTZ
) RETURNS BIGINT LANGUAGE sql AS $$
  INSERT INTO notifications (
    recipient_id, notification_timestamp, category,
    contract_id, is_accepted, product_id, order_id,
    shipping_state, delivery_date, expiration_date
  )
  VALUES (
    p_recipient_id, p_timestamp, p_category,
    p_contract_id, p_is_accepted, p_product_id, p_order_id,
    p_shipping_state, p_delivery_date, p_expiration_date
  )
  RETURNING notification_id
$$`,
		`
CREATE OR REPLACE FUNCTION GetNotificationsByRecipient(p_recipient_id BIGINT)
RETURNS SETOF notifications LANGUAGE sql STABLE AS $$
  SELECT * FROM notifications
  WHERE recipient_id = p_recipient_id
  ORDER BY notification_timestamp DESC, notification_id DESC
$$`,
		`
CREATE OR REPLACE FUNCTION MarkNotificationAsRead(p_notification_id BIGINT)
RETURNS INTEGER LANGUAGE plpgsql AS $$
DECLARE n INTEGER;
BEGIN
  UPDATE notifications SET is_read = TRUE WHERE notification_id = p_notification_id AND NOT is_read;
  GET DIAGNOSTICS n = ROW_COUNT;
  RETURN n;
END
$$`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}

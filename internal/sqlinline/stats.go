package sqlinline

const QStatsTotals = `--sql e1f6c3b8-92d4-4a07-85e9-1c0b7d2a4f68
select coalesce(sum(donations), 0), coalesce(sum(amount), 0)
from daily_stats;
`

const QStatsDaily = `--sql 7d2a915e-c60f-43b8-a4d1-3e89f0c2b657
select day, donations, amount
from daily_stats
order by day desc
limit $1::int;
`
